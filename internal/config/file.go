package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
)

// ErrConfigExists is returned by WriteDefault when the file already exists.
var ErrConfigExists = errors.New("config file already exists")

// fileConfig is the on-disk layout of config.toml.
type fileConfig struct {
	Token         string  `toml:"token"`
	LogLevel      string  `toml:"log_level"`
	LogFormat     string  `toml:"log_format"`
	SessionTTL    string  `toml:"session_ttl"`
	SweepInterval string  `toml:"sweep_interval"`
	PollTimeout   string  `toml:"poll_timeout"`
	TelegramDebug bool    `toml:"telegram_debug"`
	AllowedChats  []int64 `toml:"allowed_chats"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		SessionTTL:    DefaultSessionTTL.String(),
		SweepInterval: DefaultSweepInterval.String(),
		PollTimeout:   DefaultPollTimeout.String(),
		AllowedChats:  []int64{},
	}
}

// WriteDefault writes a config.toml with default settings into dir.
// Existing files are kept unless force is set. Returns the file path.
func WriteDefault(dir string, force bool) (string, error) {
	cfg := &Config{Dir: dir}
	if err := cfg.EnsureDir(); err != nil {
		return "", err
	}
	path := cfg.Path()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := writeTOMLAtomically(path, defaultFileConfig()); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writeTOMLAtomically writes with mode 0600; the file may hold the token.
func writeTOMLAtomically(path string, v any) error {
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// parseChatIDs accepts a TOML array or a comma/space separated string.
func parseChatIDs(raw any) ([]int64, error) {
	var items []any
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case []int64:
		if len(val) == 0 {
			return nil, nil
		}
		return append([]int64(nil), val...), nil
	case []any:
		items = val
	case string:
		for _, f := range strings.FieldsFunc(val, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}) {
			items = append(items, f)
		}
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}

	if len(items) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := cast.ToInt64E(item)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %v", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
