package commands

import (
	"strconv"
	"strings"
)

// CommandPrefix marks a message as a command.
const CommandPrefix = "/"

// IsCommand returns true if text starts with the command prefix.
func IsCommand(text string) bool {
	return strings.HasPrefix(text, CommandPrefix)
}

// CommandName extracts the command token from a message.
// "/create_task@TaskBot extra" yields "create_task".
// Returns false if text is not a command or the token is empty.
func CommandName(text string) (string, bool) {
	name, _, ok := ParseCommand(text)
	return name, ok
}

// ParseCommand splits the command token of a message into its lowercased
// name and the bot username it mentions, if any.
// "/create_task@TaskBot extra" yields "create_task" and "TaskBot".
func ParseCommand(text string) (name, mention string, ok bool) {
	if !IsCommand(text) {
		return "", "", false
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", "", false
	}
	token := strings.TrimPrefix(fields[0], CommandPrefix)
	if at := strings.IndexByte(token, '@'); at >= 0 {
		token, mention = token[:at], token[at+1:]
	}
	if token == "" {
		return "", "", false
	}
	return strings.ToLower(token), mention, true
}

// ParseNumber parses a whole decimal number, ignoring surrounding whitespace.
// Trailing garbage such as "12abc" is rejected.
func ParseNumber(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNumber returns true if ParseNumber accepts text.
func IsNumber(text string) bool {
	_, ok := ParseNumber(text)
	return ok
}

// isBlank returns true if text is empty or whitespace-only.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
