// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskbot/internal/service"
)

// ErrBackend is a generic injected store failure.
var ErrBackend = errors.New("backend unavailable")

// FakeService wraps an in-memory store and injects errors per operation.
type FakeService struct {
	*service.Memory

	mu sync.Mutex

	// Error injection for testing
	CreateTaskErr    error
	TaskErr          error
	ListTasksErr     error
	DeleteTaskErr    error
	AddSubtaskErr    error
	DeleteSubtaskErr error

	calls map[string]int
}

// NewFakeService creates a FakeService backed by a fresh store.
func NewFakeService() *FakeService {
	return &FakeService{
		Memory: service.NewMemory(),
		calls:  make(map[string]int),
	}
}

// Calls returns how many times the named operation was invoked.
func (f *FakeService) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *FakeService) CreateTask(ctx context.Context, chatID int64, name string) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	return f.Memory.CreateTask(ctx, chatID, name)
}

func (f *FakeService) Task(ctx context.Context, chatID int64, id int) (service.Task, error) {
	f.record("Task")
	if f.TaskErr != nil {
		return service.Task{}, f.TaskErr
	}
	return f.Memory.Task(ctx, chatID, id)
}

func (f *FakeService) ListTasks(ctx context.Context, chatID int64) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Memory.ListTasks(ctx, chatID)
}

func (f *FakeService) DeleteTask(ctx context.Context, chatID int64, id int) (service.Task, error) {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return service.Task{}, f.DeleteTaskErr
	}
	return f.Memory.DeleteTask(ctx, chatID, id)
}

func (f *FakeService) AddSubtask(ctx context.Context, chatID int64, taskID int, text string) (service.Task, error) {
	f.record("AddSubtask")
	if f.AddSubtaskErr != nil {
		return service.Task{}, f.AddSubtaskErr
	}
	return f.Memory.AddSubtask(ctx, chatID, taskID, text)
}

func (f *FakeService) DeleteSubtask(ctx context.Context, chatID int64, taskID, pos int) (string, error) {
	f.record("DeleteSubtask")
	if f.DeleteSubtaskErr != nil {
		return "", f.DeleteSubtaskErr
	}
	return f.Memory.DeleteSubtask(ctx, chatID, taskID, pos)
}

// Ensure FakeService implements service.Service.
var _ service.Service = (*FakeService)(nil)
