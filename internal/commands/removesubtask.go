package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// RemoveSubtaskCmd implements /remove_subtask.
//
// Flow: prompt → AwaitingTaskID → AwaitingSubtaskPosition → subtask removed.
type RemoveSubtaskCmd struct{}

func (c *RemoveSubtaskCmd) Name() string      { return "remove_subtask" }
func (c *RemoveSubtaskCmd) Aliases() []string { return nil }
func (c *RemoveSubtaskCmd) Synopsis() string  { return "Remove a subtask" }

func (c *RemoveSubtaskCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprintln(out, "🗑️ Let's remove a subtask! Enter the ID of the task you want to remove a subtask from:")
	return await(conversation.AwaitingTaskID, 0)
}

func (c *RemoveSubtaskCmd) Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	switch req.Session.State {
	case conversation.AwaitingTaskID:
		return c.chooseTask(ctx, svc, req, out)
	case conversation.AwaitingSubtaskPosition:
		return c.removeSubtask(ctx, svc, req, out)
	default:
		return done()
	}
}

func (c *RemoveSubtaskCmd) chooseTask(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	if IsCommand(req.Text) {
		replyCommandInsteadOfAnswer(out, wantTaskID)
		return done()
	}

	ref := strings.TrimSpace(req.Text)
	id, ok := ParseNumber(ref)
	if !ok {
		replyTaskNotFound(out, ref)
		return done()
	}

	task, tr, ok := findTask(ctx, svc, req.ChatID, id, ref, out)
	if !ok {
		return tr
	}

	fmt.Fprintln(out, "Enter the number of the subtask to remove:")
	return await(conversation.AwaitingSubtaskPosition, task.ID)
}

func (c *RemoveSubtaskCmd) removeSubtask(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	if IsCommand(req.Text) {
		replyCommandInsteadOfAnswer(out, wantSubtaskNumber)
		return done()
	}

	pos, ok := ParseNumber(req.Text)
	if !ok {
		replyInvalidSubtaskPosition(out)
		return done()
	}

	taskID := req.Session.TaskID
	removed, err := svc.DeleteSubtask(ctx, req.ChatID, taskID, pos)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubtaskOutOfRange):
			replyInvalidSubtaskPosition(out)
			return done()
		case errors.Is(err, service.ErrTaskNotFound):
			replyTaskNotFound(out, fmt.Sprint(taskID))
			return done()
		}
		replyBackendError(out)
		return failed(err)
	}

	fmt.Fprintf(out, "✅ Subtask \"%s\" removed from task with ID %d.\n", removed, taskID)
	return done()
}
