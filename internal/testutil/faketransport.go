package testutil

import (
	"context"
	"sync"

	"taskbot/internal/bot"
)

// Sent is one message delivered through a FakeTransport.
type Sent struct {
	ChatID int64
	Text   string
}

// FakeTransport is an in-memory bot.Transport for testing.
type FakeTransport struct {
	mu      sync.Mutex
	sent    []Sent
	menu    []bot.MenuEntry
	updates chan bot.Message
	closed  bool

	// Name is reported by Username.
	Name string

	// Error injection for testing
	SendErr        error
	SetCommandsErr error
	UpdatesErr     error
}

// NewFakeTransport creates a FakeTransport with a buffered update queue.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{updates: make(chan bot.Message, 64)}
}

// Push queues an inbound message.
func (f *FakeTransport) Push(chatID int64, text string) {
	f.updates <- bot.Message{ChatID: chatID, Text: text}
}

// Close ends the update stream.
func (f *FakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.updates)
	}
}

func (f *FakeTransport) Updates(ctx context.Context) (<-chan bot.Message, error) {
	if f.UpdatesErr != nil {
		return nil, f.UpdatesErr
	}
	return f.updates, nil
}

func (f *FakeTransport) Send(ctx context.Context, chatID int64, text string) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, Sent{ChatID: chatID, Text: text})
	return nil
}

func (f *FakeTransport) SetCommands(ctx context.Context, entries []bot.MenuEntry) error {
	if f.SetCommandsErr != nil {
		return f.SetCommandsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menu = append([]bot.MenuEntry(nil), entries...)
	return nil
}

func (f *FakeTransport) Username() string {
	return f.Name
}

// Sent returns a copy of every delivered message.
func (f *FakeTransport) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Sent(nil), f.sent...)
}

// SentTo returns the texts delivered to one chat.
func (f *FakeTransport) SentTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, s := range f.sent {
		if s.ChatID == chatID {
			texts = append(texts, s.Text)
		}
	}
	return texts
}

// Last returns the most recent message delivered to a chat.
func (f *FakeTransport) Last(chatID int64) string {
	texts := f.SentTo(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Reset forgets delivered messages.
func (f *FakeTransport) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

// Menu returns the last published command menu.
func (f *FakeTransport) Menu() []bot.MenuEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bot.MenuEntry(nil), f.menu...)
}

// Ensure FakeTransport implements bot.Transport.
var _ bot.Transport = (*FakeTransport)(nil)
