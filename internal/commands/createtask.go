package commands

import (
	"context"
	"fmt"
	"io"

	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// CreateTaskCmd implements /create_task.
//
// Flow: prompt → AwaitingDescription → task created.
type CreateTaskCmd struct{}

func (c *CreateTaskCmd) Name() string      { return "create_task" }
func (c *CreateTaskCmd) Aliases() []string { return nil }
func (c *CreateTaskCmd) Synopsis() string  { return "Create a new task" }

func (c *CreateTaskCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprintln(out, "💡 Let's add a new task!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, `Enter the task description (for example, "Buy milk"):`)
	return await(conversation.AwaitingDescription, 0)
}

func (c *CreateTaskCmd) Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	name := req.Text

	if IsCommand(name) {
		replyCommandInsteadOfAnswer(out, wantTaskDescription)
		return done()
	}
	if isBlank(name) {
		replyEmptyDescription(out, "task")
		return done()
	}

	task, err := svc.CreateTask(ctx, req.ChatID, name)
	if err != nil {
		replyBackendError(out)
		return failed(err)
	}

	fmt.Fprintln(out, "✅ Task added!")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Task: %s\n", task.Name)
	fmt.Fprintf(out, "Task ID: %d\n", task.ID)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "You can now add subtasks or view all tasks. To see all tasks, use /show_tasks.")
	return done()
}
