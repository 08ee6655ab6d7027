// Package bot routes chat messages to commands and pending flows.
package bot

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned by a transport whose credentials were rejected.
var ErrUnauthorized = errors.New("bot token rejected")

// Message is one inbound text message.
type Message struct {
	UpdateID int
	ChatID   int64
	UserID   int64
	Text     string
}

// MenuEntry is one line of the chat command menu.
type MenuEntry struct {
	Command     string
	Description string
}

// Sender delivers a reply to a conversation.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Transport is the chat platform the bot runs on.
type Transport interface {
	Sender

	// Updates starts receiving messages. The channel is closed when ctx
	// is done or the transport stops.
	Updates(ctx context.Context) (<-chan Message, error)

	// SetCommands publishes the command menu.
	SetCommands(ctx context.Context, entries []MenuEntry) error

	// Username is the bot's account name, or "" if unknown.
	Username() string
}
