// Package commands provides the bot command interface and implementations.
package commands

import (
	"context"
	"io"

	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// Request is one inbound message handed to a command.
type Request struct {
	// ChatID identifies the conversation.
	ChatID int64

	// Text is the raw message text.
	Text string

	// Session is the pending flow when the message is a reply.
	// Zero value for Run.
	Session conversation.Session
}

// Transition tells the dispatcher where the conversation goes next.
type Transition struct {
	// State is the step to wait in; Idle ends the flow.
	State conversation.State

	// TaskID is carried into the next step. Zero keeps the current value.
	TaskID int

	// Err is an unexpected store failure, reported for logging only.
	// The user has already been told in the reply.
	Err error
}

// Command defines the interface for bot commands.
type Command interface {
	// Name returns the command token without the leading slash.
	Name() string

	// Aliases returns alternative tokens for the command.
	Aliases() []string

	// Synopsis returns the description shown in the chat command menu.
	Synopsis() string

	// Run starts the command and writes exactly one reply to out.
	Run(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition

	// Resume consumes one reply of a flow this command started and
	// writes exactly one reply to out.
	Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition
}

// done ends the flow.
func done() Transition {
	return Transition{State: conversation.Idle}
}

// failed ends the flow after a store failure.
func failed(err error) Transition {
	return Transition{State: conversation.Idle, Err: err}
}

// await waits for the next reply in the given state.
func await(state conversation.State, taskID int) Transition {
	return Transition{State: state, TaskID: taskID}
}

// oneShot provides Resume for commands that never wait for a reply.
type oneShot struct{}

func (oneShot) Resume(ctx context.Context, svc service.Service, req Request, out io.Writer) Transition {
	return done()
}
