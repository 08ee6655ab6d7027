package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taskbot/internal/commands"
	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// cancelCommand is never consumed as a flow answer.
const cancelCommand = "cancel"

// Dispatcher handles inbound messages and dispatches them to commands.
type Dispatcher struct {
	registry *commands.Registry
	svc      service.Service
	sessions *conversation.Sessions
	sender   Sender
	logger   *slog.Logger
	allowed  map[int64]struct{}
	username string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithAllowedChats restricts the bot to the given chats.
// An empty list allows every chat.
func WithAllowedChats(chatIDs []int64) DispatcherOption {
	return func(d *Dispatcher) {
		if len(chatIDs) == 0 {
			d.allowed = nil
			return
		}
		d.allowed = make(map[int64]struct{}, len(chatIDs))
		for _, id := range chatIDs {
			d.allowed[id] = struct{}{}
		}
	}
}

// WithUsername sets the bot's own account name. Commands addressed to
// another bot ("/start@OtherBot") are then ignored.
func WithUsername(name string) DispatcherOption {
	return func(d *Dispatcher) {
		d.username = strings.TrimPrefix(name, "@")
	}
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(registry *commands.Registry, svc service.Service, sessions *conversation.Sessions, sender Sender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		svc:      svc,
		sessions: sessions,
		sender:   sender,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one inbound message.
// Returns an error only if the reply could not be delivered.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) error {
	if !d.chatAllowed(msg.ChatID) {
		d.logger.Debug("ignoring message from chat outside allowlist", "chat_id", msg.ChatID)
		return nil
	}
	if d.addressedElsewhere(msg.Text) {
		d.logger.Debug("ignoring command for another bot", "chat_id", msg.ChatID)
		return nil
	}

	// A pending flow consumes the next message of its chat, commands included.
	if sess, ok := d.sessions.Get(msg.ChatID); ok {
		return d.resume(ctx, sess, msg)
	}

	name, ok := commands.CommandName(msg.Text)
	if !ok {
		return nil
	}
	cmd, ok := d.registry.Find(name)
	if !ok {
		d.logger.Debug("ignoring unknown command", "chat_id", msg.ChatID, "command", name)
		return nil
	}
	return d.start(ctx, cmd, msg)
}

func (d *Dispatcher) start(ctx context.Context, cmd commands.Command, msg Message) error {
	var out bytes.Buffer
	req := commands.Request{ChatID: msg.ChatID, Text: msg.Text}
	tr := cmd.Run(ctx, d.svc, req, &out)

	if tr.Err != nil {
		d.logger.Error("command failed", "chat_id", msg.ChatID, "command", cmd.Name(), "error", tr.Err)
	}
	if tr.State != conversation.Idle {
		sess := d.sessions.Begin(msg.ChatID, cmd.Name(), tr.State)
		if tr.TaskID != 0 {
			d.sessions.Advance(msg.ChatID, tr.State, tr.TaskID)
		}
		d.logger.Info("flow started",
			"chat_id", msg.ChatID,
			"command", cmd.Name(),
			"flow", sess.ID,
			"state", tr.State.String(),
		)
	} else {
		d.logger.Debug("command handled", "chat_id", msg.ChatID, "command", cmd.Name())
	}

	return d.reply(ctx, msg.ChatID, out.String())
}

func (d *Dispatcher) resume(ctx context.Context, sess conversation.Session, msg Message) error {
	logger := d.logger.With("chat_id", msg.ChatID, "command", sess.Command, "flow", sess.ID)

	var out bytes.Buffer
	if name, ok := commands.CommandName(msg.Text); ok && name == cancelCommand {
		d.sessions.End(msg.ChatID)
		commands.Cancelled(&out, sess.Command)
		logger.Info("flow cancelled", "state", sess.State.String(), "duration", d.sessions.Age(sess).String())
		return d.reply(ctx, msg.ChatID, out.String())
	}

	cmd, ok := d.registry.Find(sess.Command)
	if !ok {
		d.sessions.End(msg.ChatID)
		logger.Warn("dropping flow of unregistered command")
		return nil
	}

	req := commands.Request{ChatID: msg.ChatID, Text: msg.Text, Session: sess}
	tr := cmd.Resume(ctx, d.svc, req, &out)
	if tr.Err != nil {
		logger.Error("flow step failed", "state", sess.State.String(), "error", tr.Err)
	}

	d.sessions.Advance(msg.ChatID, tr.State, tr.TaskID)
	if tr.State == conversation.Idle {
		logger.Info("flow finished", "last_state", sess.State.String(), "duration", d.sessions.Age(sess).String())
	} else {
		logger.Debug("flow advanced", "from", sess.State.String(), "to", tr.State.String())
	}

	return d.reply(ctx, msg.ChatID, out.String())
}

// Sweep ends every flow that waited longer than the session TTL and tells
// each affected chat. Returns the number of expired flows.
func (d *Dispatcher) Sweep(ctx context.Context) int {
	expired := d.sessions.Expire()
	for _, sess := range expired {
		var out bytes.Buffer
		commands.Expired(&out, sess.Command)
		d.logger.Info("flow expired",
			"chat_id", sess.ChatID,
			"command", sess.Command,
			"flow", sess.ID,
			"state", sess.State.String(),
			"duration", d.sessions.Age(sess).String(),
		)
		_ = d.reply(ctx, sess.ChatID, out.String())
	}
	return len(expired)
}

// reply sends one message. Empty replies are skipped.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) error {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	if err := d.sender.Send(ctx, chatID, text); err != nil {
		d.logger.Warn("failed to send reply", "chat_id", chatID, "error", err)
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// addressedElsewhere reports whether text is a command for another bot.
func (d *Dispatcher) addressedElsewhere(text string) bool {
	_, mention, ok := commands.ParseCommand(text)
	return ok && mention != "" && d.username != "" && !strings.EqualFold(mention, d.username)
}

func (d *Dispatcher) chatAllowed(chatID int64) bool {
	if d.allowed == nil {
		return true
	}
	_, ok := d.allowed[chatID]
	return ok
}

// MenuEntries builds the chat command menu from a registry.
func MenuEntries(registry *commands.Registry) []MenuEntry {
	menu := registry.Menu()
	entries := make([]MenuEntry, len(menu))
	for i, cmd := range menu {
		entries[i] = MenuEntry{
			Command:     commands.CommandPrefix + cmd.Name(),
			Description: cmd.Synopsis(),
		}
	}
	return entries
}
