package commands

import (
	"context"
	"fmt"
	"io"

	"taskbot/internal/service"
)

// StartCmd implements the /start greeting.
type StartCmd struct {
	oneShot
}

func (c *StartCmd) Name() string      { return "start" }
func (c *StartCmd) Aliases() []string { return []string{"help"} }
func (c *StartCmd) Synopsis() string  { return "Start the bot and see the menu" }

func (c *StartCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprint(out, welcomeText)
	return done()
}

const welcomeText = `Welcome to the task management bot! 🎉

Available commands:
/create_task - Create a task
/create_subtask - Create a subtask
/show_tasks - Show all tasks
/remove_task - Remove a task
/remove_subtask - Remove a subtask
`
