// Package config loads bot settings from the config directory, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"taskbot/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "taskbot"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.toml"

	// EnvPrefix prefixes every environment override, e.g. TASKBOT_LOG_LEVEL.
	EnvPrefix = "TASKBOT"

	// LegacyTokenEnv is also accepted for the bot token.
	LegacyTokenEnv = "TELEGRAM_BOT_TOKEN"

	// DefaultEnvFile is loaded when present.
	DefaultEnvFile = ".env"
)

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultSessionTTL    = 5 * time.Minute
	DefaultSweepInterval = time.Minute
	DefaultPollTimeout   = 30 * time.Second
)

// ErrMissingToken is returned when no bot token is configured.
var ErrMissingToken = errors.New("bot token is not configured (set TELEGRAM_BOT_TOKEN or token in config.toml)")

// Config holds the resolved settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Token is the Telegram bot token.
	Token string

	LogLevel  string
	LogFormat string

	// SessionTTL is how long a flow waits for a reply. Zero disables expiry.
	SessionTTL time.Duration

	SweepInterval time.Duration
	PollTimeout   time.Duration

	// TelegramDebug logs every Bot API request.
	TelegramDebug bool

	// AllowedChats restricts the bot to these chats when non-empty.
	AllowedChats []int64
}

// Options are command-line overrides applied last.
type Options struct {
	Dir      string
	EnvFile  string
	LogLevel string

	// Debug forces the debug log level.
	Debug bool
}

// Load resolves settings in increasing priority: defaults, config.toml,
// .env file, environment, then opts.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", LegacyTokenEnv); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	chats, err := parseChatIDs(v.Get("allowed_chats"))
	if err != nil {
		return nil, fmt.Errorf("allowed_chats: %w", err)
	}

	cfg := &Config{
		Dir:           dir,
		Token:         strings.TrimSpace(v.GetString("token")),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:     strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		SessionTTL:    v.GetDuration("session_ttl"),
		SweepInterval: v.GetDuration("sweep_interval"),
		PollTimeout:   v.GetDuration("poll_timeout"),
		TelegramDebug: v.GetBool("telegram_debug"),
		AllowedChats:  chats,
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(opts.LogLevel))
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("sweep_interval", DefaultSweepInterval)
	v.SetDefault("poll_timeout", DefaultPollTimeout)
	v.SetDefault("telegram_debug", false)
	v.SetDefault("allowed_chats", []int64{})
}

// loadEnvFile loads path into the environment without overriding
// variables that are already set. A missing default file is ignored.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("invalid log format %q (want json or text)", c.LogFormat)
	}
	// Bare TOML integers decode as nanoseconds.
	if c.SessionTTL != 0 && c.SessionTTL < time.Second {
		return fmt.Errorf("session_ttl must be 0 or at least 1s, got %s", c.SessionTTL)
	}
	if c.SweepInterval < time.Second {
		return fmt.Errorf("sweep_interval must be at least 1s, got %s", c.SweepInterval)
	}
	if c.PollTimeout < time.Second {
		return fmt.Errorf("poll_timeout must be at least 1s, got %s", c.PollTimeout)
	}
	return nil
}

// RequireToken returns ErrMissingToken if no token is configured.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to the settings file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
