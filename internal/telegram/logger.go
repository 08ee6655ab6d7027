package telegram

import (
	"fmt"
	"log/slog"
	"strings"
)

// logBridge routes tgbotapi's log output to slog.
// The library uses Println for failures and Printf for debug traces.
type logBridge struct {
	logger *slog.Logger
}

func newLogBridge(logger *slog.Logger) logBridge {
	return logBridge{logger: logger.With("component", "tgbotapi")}
}

func (b logBridge) Println(v ...interface{}) {
	b.logger.Warn(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (b logBridge) Printf(format string, v ...interface{}) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
