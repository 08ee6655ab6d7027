package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskbot/internal/commands"
	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

// DefaultSweepInterval is how often expired flows are collected.
const DefaultSweepInterval = time.Minute

// Options configures a Bot.
type Options struct {
	// Registry defaults to commands.DefaultRegistry.
	Registry *commands.Registry

	// Service defaults to a fresh in-memory store.
	Service service.Service

	// SessionTTL is how long a flow waits for a reply.
	// Zero uses conversation.DefaultTTL; negative disables expiry.
	SessionTTL time.Duration

	// SweepInterval defaults to DefaultSweepInterval.
	SweepInterval time.Duration

	// AllowedChats restricts the bot to these chats when non-empty.
	AllowedChats []int64

	Logger *slog.Logger
}

// Bot runs the dispatcher against a transport.
type Bot struct {
	transport     Transport
	registry      *commands.Registry
	dispatcher    *Dispatcher
	sweepInterval time.Duration
	logger        *slog.Logger
}

// New creates a bot on the given transport.
func New(transport Transport, opts Options) *Bot {
	registry := opts.Registry
	if registry == nil {
		registry = commands.DefaultRegistry
	}
	svc := opts.Service
	if svc == nil {
		svc = service.NewMemory()
	}
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = conversation.DefaultTTL
	}
	interval := opts.SweepInterval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher := NewDispatcher(registry, svc, conversation.NewSessions(ttl), transport,
		WithLogger(logger),
		WithAllowedChats(opts.AllowedChats),
		WithUsername(transport.Username()),
	)
	return &Bot{
		transport:     transport,
		registry:      registry,
		dispatcher:    dispatcher,
		sweepInterval: interval,
		logger:        logger,
	}
}

// Run publishes the command menu and handles messages until ctx is done or
// the update stream ends. Messages and expiry sweeps are handled on one
// goroutine, in arrival order.
func (b *Bot) Run(ctx context.Context) error {
	// The menu is cosmetic; a failure is not fatal.
	if err := b.transport.SetCommands(ctx, MenuEntries(b.registry)); err != nil {
		b.logger.Warn("failed to publish command menu", "error", err)
	}

	updates, err := b.transport.Updates(ctx)
	if err != nil {
		return fmt.Errorf("start updates: %w", err)
	}
	b.logger.Info("bot started", "sweep_interval", b.sweepInterval.String())

	ticker := time.NewTicker(b.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot stopping", "reason", ctx.Err())
			return nil
		case msg, ok := <-updates:
			if !ok {
				b.logger.Info("update stream closed")
				return nil
			}
			// Delivery failures are logged by the dispatcher.
			_ = b.dispatcher.Handle(ctx, msg)
		case <-ticker.C:
			b.dispatcher.Sweep(ctx)
		}
	}
}
