// Package telegram implements the bot transport on the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskbot/internal/bot"
)

// DefaultPollTimeout is the long-polling timeout for getUpdates.
const DefaultPollTimeout = 30 * time.Second

// botAPI is the subset of tgbotapi.BotAPI the client uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Options configures a Client.
type Options struct {
	// PollTimeout defaults to DefaultPollTimeout.
	PollTimeout time.Duration

	// Debug logs every Bot API request.
	Debug bool

	// Endpoint overrides the Bot API URL format (tgbotapi.APIEndpoint).
	Endpoint string

	Logger *slog.Logger
}

// Client is a bot.Transport backed by the Telegram Bot API.
type Client struct {
	api         botAPI
	username    string
	pollTimeout time.Duration
	logger      *slog.Logger
}

// New connects to Telegram and verifies the token.
func New(token string, opts Options) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: token is empty", bot.ErrUnauthorized)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// The library logs through a package-level logger.
	_ = tgbotapi.SetLogger(newLogBridge(logger))

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{})
	if err != nil {
		if isUnauthorized(err) {
			return nil, fmt.Errorf("%w: %v", bot.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = opts.Debug

	logger.Info("authorized on telegram", "username", api.Self.UserName)
	c := newClient(api, opts.PollTimeout, logger)
	c.username = api.Self.UserName
	return c, nil
}

func newClient(api botAPI, pollTimeout time.Duration, logger *slog.Logger) *Client {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:         api,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Updates starts long polling. Only text messages are delivered.
func (c *Client) Updates(ctx context.Context) (<-chan bot.Message, error) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(c.pollTimeout / time.Second)
	cfg.AllowedUpdates = []string{"message"}

	src := c.api.GetUpdatesChan(cfg)
	out := make(chan bot.Message)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				c.api.StopReceivingUpdates()
				c.logger.Debug("polling stopped")
				return
			case update, ok := <-src:
				if !ok {
					return
				}
				msg, ok := messageFromUpdate(update)
				if !ok {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					c.api.StopReceivingUpdates()
					return
				}
			}
		}
	}()

	return out, nil
}

// Username returns the bot's account name as reported by getMe.
func (c *Client) Username() string {
	return c.username
}

// Send delivers text to a chat, split into as many messages as needed.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range Split(text, MaxMessageLength) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.api.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// SetCommands publishes the command menu.
func (c *Client) SetCommands(ctx context.Context, entries []bot.MenuEntry) error {
	commands := make([]tgbotapi.BotCommand, 0, len(entries))
	for _, e := range entries {
		commands = append(commands, tgbotapi.BotCommand{
			Command:     strings.TrimPrefix(e.Command, "/"),
			Description: e.Description,
		})
	}
	if _, err := c.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}
	return nil
}

func messageFromUpdate(update tgbotapi.Update) (bot.Message, bool) {
	m := update.Message
	if m == nil || m.Chat == nil || m.Text == "" {
		return bot.Message{}, false
	}
	msg := bot.Message{
		UpdateID: update.UpdateID,
		ChatID:   m.Chat.ID,
		Text:     m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	return msg, true
}

func isUnauthorized(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized
}

// Ensure Client implements bot.Transport.
var _ bot.Transport = (*Client)(nil)
