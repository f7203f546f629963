package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inkwell-sh/quill/internal/core"
)

// Serialize projects the store into the zero-or-one synthetic system
// message prepended to outbound completion requests. Items appear in
// relevance-descending order, ties keeping their relative insertion
// order. An empty store produces no message.
func (s *Store) Serialize() (core.Message, bool) {
	if len(s.items) == 0 {
		return core.Message{}, false
	}

	items := s.List()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance > items[j].Relevance
	})

	blocks := make([]string, 0, len(items))
	for _, item := range items {
		label := item.Source.Label()
		if item.Path != "" {
			label = fmt.Sprintf("%s (%s)", label, item.Path)
		}
		blocks = append(blocks, fmt.Sprintf("--- BEGIN %s ---\n%s\n--- END %s ---", label, item.Content, label))
	}

	return core.Message{
		Role:    core.RoleSystem,
		Content: strings.Join(blocks, "\n\n"),
	}, true
}
