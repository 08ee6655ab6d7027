package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// CreateSubtaskCmd implements /create_subtask.
//
// Flow: prompt → AwaitingTaskID → AwaitingSubtaskText → subtask appended.
type CreateSubtaskCmd struct{}

func (c *CreateSubtaskCmd) Name() string      { return "create_subtask" }
func (c *CreateSubtaskCmd) Aliases() []string { return nil }
func (c *CreateSubtaskCmd) Synopsis() string  { return "Create a subtask" }

func (c *CreateSubtaskCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprintln(out, "🔧 Let's add a subtask to an existing task!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Enter the ID of the task you want to add a subtask to:")
	return await(conversation.AwaitingTaskID, 0)
}

func (c *CreateSubtaskCmd) Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	switch req.Session.State {
	case conversation.AwaitingTaskID:
		return c.chooseTask(ctx, svc, req, out)
	case conversation.AwaitingSubtaskText:
		return c.addSubtask(ctx, svc, req, out)
	default:
		return done()
	}
}

func (c *CreateSubtaskCmd) chooseTask(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	if IsCommand(req.Text) {
		replyCommandInsteadOfAnswer(out, wantTaskID)
		return done()
	}

	id, ok := ParseNumber(req.Text)
	if !ok {
		replyNotANumber(out)
		return done()
	}

	task, tr, ok := findTask(ctx, svc, req.ChatID, id, strconv.Itoa(id), out)
	if !ok {
		return tr
	}

	fmt.Fprintln(out, `📝 Now enter the subtask description (for example, "Buy bread"):`)
	return await(conversation.AwaitingSubtaskText, task.ID)
}

func (c *CreateSubtaskCmd) addSubtask(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	text := req.Text

	if IsCommand(text) {
		replyCommandInsteadOfAnswer(out, wantSubtaskDescription)
		return done()
	}
	if isBlank(text) {
		replyEmptyDescription(out, "subtask")
		return done()
	}

	taskID := req.Session.TaskID
	if _, err := svc.AddSubtask(ctx, req.ChatID, taskID, text); err != nil {
		// The task can be removed between the two steps.
		if errors.Is(err, service.ErrTaskNotFound) {
			replyTaskNotFound(out, strconv.Itoa(taskID))
			return done()
		}
		replyBackendError(out)
		return failed(err)
	}

	fmt.Fprintf(out, "✅ Subtask added to task with ID %d!\n", taskID)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Subtask: %s\n", text)
	fmt.Fprintln(out, "You can add more subtasks or view all tasks with /show_tasks.")
	return done()
}
