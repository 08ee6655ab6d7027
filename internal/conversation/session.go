// Package conversation tracks the pending multi-step flow of each chat.
//
// A chat is either Idle (no session) or waiting for exactly one reply in one
// of the Awaiting states. Replies are routed only to the session of the chat
// they arrive on. Sessions that see no reply within the TTL are expired by
// Sessions.Expire.
package conversation

import (
	"time"

	"github.com/google/uuid"
)

// State is the step a conversation is waiting on.
type State int

const (
	// Idle means no flow is pending.
	Idle State = iota
	// AwaitingDescription waits for the text of a new task.
	AwaitingDescription
	// AwaitingTaskID waits for the numeric ID of an existing task.
	AwaitingTaskID
	// AwaitingSubtaskText waits for the text of a new subtask.
	AwaitingSubtaskText
	// AwaitingSubtaskPosition waits for the 1-based position of a subtask.
	AwaitingSubtaskPosition
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingDescription:
		return "awaiting_description"
	case AwaitingTaskID:
		return "awaiting_task_id"
	case AwaitingSubtaskText:
		return "awaiting_subtask_text"
	case AwaitingSubtaskPosition:
		return "awaiting_subtask_position"
	default:
		return "unknown"
	}
}

// Session is the pending flow of one chat.
type Session struct {
	ID        string // correlates log lines of one flow
	ChatID    int64
	Command   string // name of the command that owns the flow
	State     State
	TaskID    int // task chosen in an earlier step, 0 if none yet
	StartedAt time.Time
	UpdatedAt time.Time
}

// newSession starts a session for the given command.
func newSession(chatID int64, command string, state State, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Command:   command,
		State:     state,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// expired reports whether the session saw no transition within ttl.
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.UpdatedAt) >= ttl
}
