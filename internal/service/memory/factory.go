package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-sh/quill/internal/core"
)

// Factory translates the four external triggers into stored context
// items with source-appropriate default relevance.
type Factory struct {
	store *Store
	files core.FileReader
}

func NewFactory(store *Store, files core.FileReader) *Factory {
	return &Factory{
		store: store,
		files: files,
	}
}

// Option overrides candidate defaults.
type Option func(*Candidate)

// WithRelevance overrides the source default score.
func WithRelevance(score int) Option {
	return func(c *Candidate) {
		c.Relevance = score
	}
}

// FromFile attaches a file's content. The only failure mode is the
// underlying read failing.
func (f *Factory) FromFile(ctx context.Context, path string, opts ...Option) (core.ContextItem, error) {
	content, err := f.files.ReadFile(ctx, path)
	if err != nil {
		return core.ContextItem{}, fmt.Errorf("attach file: %w", err)
	}

	c := Candidate{
		Source:    core.SourceFile,
		Content:   content,
		Relevance: core.SourceFile.DefaultRelevance(),
		Path:      path,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return f.store.Add(ctx, c), nil
}

// FromSelection attaches selected text. An empty selection is a
// legitimate no-op, not an error: no item is created and the store is
// untouched.
func (f *Factory) FromSelection(ctx context.Context, text string, opts ...Option) (core.ContextItem, bool) {
	if strings.TrimSpace(text) == "" {
		return core.ContextItem{}, false
	}

	c := Candidate{
		Source:    core.SourceSelection,
		Content:   text,
		Relevance: core.SourceSelection.DefaultRelevance(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return f.store.Add(ctx, c), true
}

// FromConversation attaches a past conversation, flattened to
// "role: content" lines joined by blank lines.
func (f *Factory) FromConversation(ctx context.Context, turns []core.Message, opts ...Option) core.ContextItem {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}

	c := Candidate{
		Source:    core.SourceConversation,
		Content:   strings.Join(lines, "\n\n"),
		Relevance: core.SourceConversation.DefaultRelevance(),
		Path:      core.PathChatHistory,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return f.store.Add(ctx, c)
}

// FromManual attaches a free-text note.
func (f *Factory) FromManual(ctx context.Context, text string, opts ...Option) core.ContextItem {
	c := Candidate{
		Source:    core.SourceManual,
		Content:   text,
		Relevance: core.SourceManual.DefaultRelevance(),
		Path:      core.PathManualInput,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return f.store.Add(ctx, c)
}
