package commands

import (
	"context"
	"fmt"
	"io"

	"taskbot/internal/output"
	"taskbot/internal/service"
)

// ShowTasksCmd implements /show_tasks.
// Read-only; renders the whole list in one message.
type ShowTasksCmd struct {
	oneShot
}

func (c *ShowTasksCmd) Name() string      { return "show_tasks" }
func (c *ShowTasksCmd) Aliases() []string { return nil }
func (c *ShowTasksCmd) Synopsis() string  { return "Show all tasks" }

func (c *ShowTasksCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	tasks, err := svc.ListTasks(ctx, req.ChatID)
	if err != nil {
		replyBackendError(out)
		return failed(err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "😕 You have no tasks. To add a task, use /create_task.")
		return done()
	}

	output.FormatTaskList(out, tasks)
	return done()
}
