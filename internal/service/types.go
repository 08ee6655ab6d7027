// Package service defines the task store used by the bot commands.
package service

// Task represents a single task of a conversation.
type Task struct {
	ID       int
	Name     string
	Subtasks []string // in insertion order; addressed by 1-based position
}

// clone returns a copy that shares no backing array with t.
func (t Task) clone() Task {
	out := t
	if t.Subtasks != nil {
		out.Subtasks = make([]string, len(t.Subtasks))
		copy(out.Subtasks, t.Subtasks)
	}
	return out
}
