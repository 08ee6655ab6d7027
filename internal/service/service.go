// Package service defines the task store used by the bot commands.
package service

import (
	"context"
	"errors"
)

// ErrTaskNotFound is returned when no task of the conversation has the requested ID.
var ErrTaskNotFound = errors.New("task not found")

// ErrSubtaskOutOfRange is returned when a subtask position is outside [1, n].
var ErrSubtaskOutOfRange = errors.New("subtask position out of range")

// Service defines the interface for task store operations.
// Every operation is scoped to one conversation (chat ID).
// Commands never touch the underlying maps directly.
type Service interface {
	// CreateTask appends a new task with no subtasks.
	// The returned task carries the assigned ID.
	CreateTask(ctx context.Context, chatID int64, name string) (Task, error)

	// Task returns the first task with the given ID.
	// Returns ErrTaskNotFound if there is none.
	Task(ctx context.Context, chatID int64, id int) (Task, error)

	// ListTasks returns the tasks of a conversation in creation order.
	// Returns an empty slice for a conversation that has no tasks.
	ListTasks(ctx context.Context, chatID int64) ([]Task, error)

	// DeleteTask removes the first task with the given ID and returns it.
	// Remaining tasks keep their IDs and relative order.
	DeleteTask(ctx context.Context, chatID int64, id int) (Task, error)

	// AddSubtask appends a subtask to the task with the given ID.
	AddSubtask(ctx context.Context, chatID int64, taskID int, text string) (Task, error)

	// DeleteSubtask removes the subtask at the 1-based position and returns its text.
	// Returns ErrSubtaskOutOfRange if pos is outside [1, n].
	DeleteSubtask(ctx context.Context, chatID int64, taskID int, pos int) (string, error)
}
