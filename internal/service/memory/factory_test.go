package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell-sh/quill/internal/core"
)

type fakeFileReader struct {
	files map[string]string
	err   error
}

func (f *fakeFileReader) ReadFile(ctx context.Context, path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	content, ok := f.files[path]
	if !ok {
		return "", errors.New("no such file")
	}
	return content, nil
}

func TestFactory_FromFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{files: map[string]string{"main.go": "package main"}})

	item, err := f.FromFile(ctx, "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Source != core.SourceFile {
		t.Errorf("source = %q, want file", item.Source)
	}
	if item.Content != "package main" {
		t.Errorf("content = %q", item.Content)
	}
	if item.Path != "main.go" {
		t.Errorf("path = %q, want main.go", item.Path)
	}
	if item.Relevance != core.RelevanceFile {
		t.Errorf("relevance = %d, want %d", item.Relevance, core.RelevanceFile)
	}
	if s.Len() != 1 {
		t.Errorf("store len = %d, want 1", s.Len())
	}
}

func TestFactory_FromFile_ReadErrorPropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	readErr := errors.New("permission denied")
	f := NewFactory(s, &fakeFileReader{err: readErr})

	_, err := f.FromFile(ctx, "secret.txt")
	if !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("store must stay untouched on read failure, len = %d", s.Len())
	}
}

func TestFactory_FromSelection_EmptyIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{})

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := f.FromSelection(ctx, text); ok {
			t.Errorf("selection %q should produce no item", text)
		}
	}
	if s.Len() != 0 {
		t.Errorf("store len = %d, want 0 after empty selections", s.Len())
	}
}

func TestFactory_FromSelection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{})

	item, ok := f.FromSelection(ctx, "x := compute()")
	if !ok {
		t.Fatal("expected an item")
	}
	if item.Source != core.SourceSelection {
		t.Errorf("source = %q, want selection", item.Source)
	}
	if item.Relevance != core.RelevanceSelection {
		t.Errorf("relevance = %d, want %d", item.Relevance, core.RelevanceSelection)
	}
	if item.Path != "" {
		t.Errorf("path = %q, want empty", item.Path)
	}
}

func TestFactory_FromConversation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{})

	item := f.FromConversation(ctx, []core.Message{
		{Role: core.RoleUser, Content: "what is a mutex?"},
		{Role: core.RoleAssistant, Content: "a lock."},
	})

	want := "user: what is a mutex?\n\nassistant: a lock."
	if item.Content != want {
		t.Errorf("content = %q, want %q", item.Content, want)
	}
	if item.Source != core.SourceConversation {
		t.Errorf("source = %q, want conversation", item.Source)
	}
	if item.Path != core.PathChatHistory {
		t.Errorf("path = %q, want %q", item.Path, core.PathChatHistory)
	}
	if item.Relevance != core.RelevanceConversation {
		t.Errorf("relevance = %d, want %d", item.Relevance, core.RelevanceConversation)
	}
}

func TestFactory_FromManual(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{})

	item := f.FromManual(ctx, "remember: prod deploys on friday are banned")
	if item.Source != core.SourceManual {
		t.Errorf("source = %q, want manual", item.Source)
	}
	if item.Path != core.PathManualInput {
		t.Errorf("path = %q, want %q", item.Path, core.PathManualInput)
	}
	if item.Relevance != core.RelevanceManual {
		t.Errorf("relevance = %d, want %d", item.Relevance, core.RelevanceManual)
	}
}

func TestFactory_WithRelevanceOverride(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(newFakeBlob())
	f := NewFactory(s, &fakeFileReader{})

	item := f.FromManual(ctx, "critical note", WithRelevance(99))
	if item.Relevance != 99 {
		t.Errorf("relevance = %d, want 99", item.Relevance)
	}
}
