package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/internal/service/memory"
)

type stubCommand struct {
	name    string
	result  string
	err     error
	gotArgs []string
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Execute(ctx context.Context, args []string) (string, error) {
	s.gotArgs = args
	return s.result, s.err
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()
	stub := &stubCommand{name: "note", result: "done"}
	router := New([]core.Command{stub})

	out, handled := router.Execute(context.Background(), "/note remember this")
	require.True(t, handled)
	assert.Equal(t, "done", out)
	assert.Equal(t, []string{"remember", "this"}, stub.gotArgs)
}

func TestRouter_NonCommandInputPassesThrough(t *testing.T) {
	t.Parallel()
	router := New(nil)

	_, handled := router.Execute(context.Background(), "just a chat message")
	assert.False(t, handled)
}

func TestRouter_UnknownCommand(t *testing.T) {
	t.Parallel()
	router := New(nil)

	out, handled := router.Execute(context.Background(), "/bogus")
	require.True(t, handled)
	assert.Contains(t, out, "Unknown command: /bogus")
}

func TestRouter_CommandErrorIsReported(t *testing.T) {
	t.Parallel()
	stub := &stubCommand{name: "add", err: errors.New("file unreadable")}
	router := New([]core.Command{stub})

	out, handled := router.Execute(context.Background(), "/add gone.txt")
	require.True(t, handled)
	assert.Contains(t, out, "file unreadable")
}

type nullBlob struct{}

func (nullBlob) Put(ctx context.Context, key string, data []byte) error { return nil }
func (nullBlob) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, core.ErrNotFound
}

func TestRemoveCommand_PrefixResolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore(nullBlob{})
	item := store.Add(ctx, memory.Candidate{Source: core.SourceManual, Content: "x", Relevance: 10})

	cmd := NewRemoveCommand(store)
	out, err := cmd.Execute(ctx, []string{item.ID[:8]})
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	assert.Equal(t, 0, store.Len())
}

func TestSelectionCommand_EmptyIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore(nullBlob{})
	factory := memory.NewFactory(store, nil)

	cmd := NewAddSelectionCommand(factory)
	out, err := cmd.Execute(ctx, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Nothing selected"))
	assert.Equal(t, 0, store.Len())
}
