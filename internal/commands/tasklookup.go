package commands

import (
	"context"
	"errors"
	"io"

	"taskbot/internal/service"
)

// findTask loads the task a flow step refers to. ref is the user's text,
// echoed back when the task does not exist. On failure the reply is
// written and the returned transition ends the flow.
func findTask(ctx context.Context, svc service.Service, chatID int64, id int, ref string, out io.Writer) (service.Task, Transition, bool) {
	task, err := svc.Task(ctx, chatID, id)
	if err == nil {
		return task, Transition{}, true
	}
	if errors.Is(err, service.ErrTaskNotFound) {
		replyTaskNotFound(out, ref)
		return service.Task{}, done(), false
	}
	replyBackendError(out)
	return service.Task{}, failed(err), false
}
