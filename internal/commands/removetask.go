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

// RemoveTaskCmd implements /remove_task.
//
// Flow: prompt → AwaitingTaskID → task removed.
// There is no separate not-a-number reply: any reply that does not name an
// existing task is reported as not found.
type RemoveTaskCmd struct{}

func (c *RemoveTaskCmd) Name() string      { return "remove_task" }
func (c *RemoveTaskCmd) Aliases() []string { return nil }
func (c *RemoveTaskCmd) Synopsis() string  { return "Remove a task" }

func (c *RemoveTaskCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprintln(out, "🗑️ Let's remove a task! Enter the ID of the task you want to remove:")
	return await(conversation.AwaitingTaskID, 0)
}

func (c *RemoveTaskCmd) Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
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

	removed, err := svc.DeleteTask(ctx, req.ChatID, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			replyTaskNotFound(out, ref)
			return done()
		}
		replyBackendError(out)
		return failed(err)
	}

	fmt.Fprintf(out, "✅ Task with ID %d removed: %s\n", removed.ID, removed.Name)
	return done()
}
