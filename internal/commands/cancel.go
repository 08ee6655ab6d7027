package commands

import (
	"context"
	"fmt"
	"io"

	"taskbot/internal/service"
)

// CancelCmd implements /cancel.
//
// The dispatcher intercepts /cancel while a flow is pending and calls
// Cancelled instead of treating it as an answer. Run only handles the case
// where nothing is pending.
type CancelCmd struct {
	oneShot
}

func (c *CancelCmd) Name() string      { return "cancel" }
func (c *CancelCmd) Aliases() []string { return nil }
func (c *CancelCmd) Synopsis() string  { return "Cancel the current step" }

func (c *CancelCmd) Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	fmt.Fprintln(out, "Nothing to cancel.")
	return done()
}

// Cancelled writes the reply for a flow ended by /cancel.
func Cancelled(out io.Writer, command string) {
	fmt.Fprintf(out, "❎ /%s cancelled.\n", command)
}

// Expired writes the reply for a flow that saw no answer in time.
func Expired(out io.Writer, command string) {
	fmt.Fprintf(out, "⏰ No reply received, /%s was cancelled. Send the command again to start over.\n", command)
}
