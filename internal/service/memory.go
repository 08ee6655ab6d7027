package service

import (
	"context"
	"sync"
)

// chatTasks is the task list of one conversation.
type chatTasks struct {
	tasks  []Task
	lastID int // highest ID ever assigned; never decreases
}

// Memory is an in-memory implementation of Service.
// State lives for the process lifetime and is lost on restart.
type Memory struct {
	mu    sync.RWMutex
	chats map[int64]*chatTasks
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		chats: make(map[int64]*chatTasks),
	}
}

// CreateTask implements Service.
func (m *Memory) CreateTask(ctx context.Context, chatID int64, name string) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.chats[chatID]
	if !ok {
		c = &chatTasks{}
		m.chats[chatID] = c
	}

	c.lastID++
	task := Task{ID: c.lastID, Name: name}
	c.tasks = append(c.tasks, task)
	return task.clone(), nil
}

// Task implements Service.
func (m *Memory) Task(ctx context.Context, chatID int64, id int) (Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(chatID, id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	return m.chats[chatID].tasks[i].clone(), nil
}

// ListTasks implements Service.
func (m *Memory) ListTasks(ctx context.Context, chatID int64) ([]Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chats[chatID]
	if !ok {
		return []Task{}, nil
	}
	result := make([]Task, len(c.tasks))
	for i, t := range c.tasks {
		result[i] = t.clone()
	}
	return result, nil
}

// DeleteTask implements Service.
func (m *Memory) DeleteTask(ctx context.Context, chatID int64, id int) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(chatID, id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	c := m.chats[chatID]
	removed := c.tasks[i]
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return removed, nil
}

// AddSubtask implements Service.
func (m *Memory) AddSubtask(ctx context.Context, chatID int64, taskID int, text string) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(chatID, taskID)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	t := &m.chats[chatID].tasks[i]
	t.Subtasks = append(t.Subtasks, text)
	return t.clone(), nil
}

// DeleteSubtask implements Service.
func (m *Memory) DeleteSubtask(ctx context.Context, chatID int64, taskID int, pos int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(chatID, taskID)
	if i < 0 {
		return "", ErrTaskNotFound
	}
	t := &m.chats[chatID].tasks[i]

	idx := pos - 1
	if idx < 0 || idx >= len(t.Subtasks) {
		return "", ErrSubtaskOutOfRange
	}
	removed := t.Subtasks[idx]
	t.Subtasks = append(t.Subtasks[:idx], t.Subtasks[idx+1:]...)
	return removed, nil
}

// indexOf returns the position of the first task with the given ID, or -1.
// Caller must hold m.mu.
func (m *Memory) indexOf(chatID int64, id int) int {
	c, ok := m.chats[chatID]
	if !ok {
		return -1
	}
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
