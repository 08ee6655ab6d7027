package commands

import (
	"fmt"
	"io"
)

// What a flow step expects, used in the command-instead-of-answer reply.
const (
	wantTaskDescription    = "a task description"
	wantSubtaskDescription = "a subtask description"
	wantTaskID             = "a numeric task ID"
	wantSubtaskNumber      = "the number of the subtask to remove"
)

// replyCommandInsteadOfAnswer is sent when a command arrives where an answer was expected.
func replyCommandInsteadOfAnswer(out io.Writer, want string) {
	fmt.Fprintf(out, "❌ That is a command. Please enter %s, not a command.\n", want)
}

// replyEmptyDescription is sent for an empty or whitespace-only description.
func replyEmptyDescription(out io.Writer, what string) {
	fmt.Fprintf(out, "❌ The %s description cannot be empty. Please enter a description.\n", what)
}

// replyNotANumber is sent when a task ID is not a number.
func replyNotANumber(out io.Writer) {
	fmt.Fprintln(out, "❌ The task ID must be a number. Please enter a numeric ID.")
}

// replyTaskNotFound is sent when no task has the requested ID.
// ref is the ID as the user typed it.
func replyTaskNotFound(out io.Writer, ref string) {
	fmt.Fprintf(out, "❌ Task with ID %s not found. Please enter a valid ID.\n", ref)
}

// replyInvalidSubtaskPosition is sent for a subtask number outside the list.
func replyInvalidSubtaskPosition(out io.Writer) {
	fmt.Fprintln(out, "❌ Invalid subtask number.")
}

// replyBackendError is sent when the task store fails unexpectedly.
func replyBackendError(out io.Writer) {
	fmt.Fprintln(out, "⚠️ Something went wrong. Please try again.")
}
