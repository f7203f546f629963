package histfile

import (
	"strings"

	"github.com/inkwell-sh/quill/internal/core"
)

const (
	titleMaxLen   = 50
	fallbackTitle = "New Chat"
)

// TitleFor derives a conversation title from the first user turn's
// first line. The cut point is exactly titleMaxLen characters of the
// untrimmed line, independent of word boundaries; a line at or under
// the limit is returned unchanged.
func TitleFor(messages []core.Message) string {
	for _, m := range messages {
		if m.Role != core.RoleUser {
			continue
		}

		line, _, _ := strings.Cut(m.Content, "\n")
		if line == "" {
			return fallbackTitle
		}

		runes := []rune(line)
		if len(runes) > titleMaxLen {
			return string(runes[:titleMaxLen]) + "..."
		}
		return line
	}
	return fallbackTitle
}
