// Package main is the entry point for the taskbot Telegram bot.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskbot/internal/bot"
	"taskbot/internal/cli"
	"taskbot/internal/commands"
	"taskbot/internal/config"
	"taskbot/internal/telegram"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Create transport factory
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bot.Transport, error) {
		client, err := telegram.New(cfg.Token, telegram.Options{
			PollTimeout: cfg.PollTimeout,
			Debug:       cfg.TelegramDebug,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
