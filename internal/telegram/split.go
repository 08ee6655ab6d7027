package telegram

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the Bot API limit for one text message.
const MaxMessageLength = 4096

// Split breaks text into chunks of at most limit characters.
// Chunks end on line boundaries unless a single line exceeds the limit.
func Split(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		chunk := strings.TrimRight(cur.String(), "\n")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		cur.Reset()
		curLen = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		cur.WriteString(line)
		curLen += n
	}
	flush()

	return chunks
}
