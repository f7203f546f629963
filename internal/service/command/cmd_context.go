package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/internal/service/memory"
)

// AddFileCommand attaches a file's content to the context store.
type AddFileCommand struct {
	factory   *memory.Factory
	formatter *ResponseFormatter
}

func NewAddFileCommand(factory *memory.Factory) *AddFileCommand {
	return &AddFileCommand{factory: factory, formatter: NewResponseFormatter()}
}

func (c *AddFileCommand) Name() string        { return "add" }
func (c *AddFileCommand) Description() string { return "Attach a file to the context" }

func (c *AddFileCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/add <path>"), nil
	}

	item, err := c.factory.FromFile(ctx, args[0])
	if err != nil {
		return "", err
	}
	return c.formatter.Success(fmt.Sprintf("Attached %s (relevance %d)", item.Path, item.Relevance)), nil
}

// AddSelectionCommand attaches pasted text as a selection. An empty
// selection is a no-op.
type AddSelectionCommand struct {
	factory   *memory.Factory
	formatter *ResponseFormatter
}

func NewAddSelectionCommand(factory *memory.Factory) *AddSelectionCommand {
	return &AddSelectionCommand{factory: factory, formatter: NewResponseFormatter()}
}

func (c *AddSelectionCommand) Name() string        { return "sel" }
func (c *AddSelectionCommand) Description() string { return "Attach selected text to the context" }

func (c *AddSelectionCommand) Execute(ctx context.Context, args []string) (string, error) {
	item, ok := c.factory.FromSelection(ctx, strings.Join(args, " "))
	if !ok {
		return "Nothing selected.", nil
	}
	return c.formatter.Success(fmt.Sprintf("Attached selection (relevance %d)", item.Relevance)), nil
}

// NoteCommand attaches a manual note.
type NoteCommand struct {
	factory   *memory.Factory
	formatter *ResponseFormatter
}

func NewNoteCommand(factory *memory.Factory) *NoteCommand {
	return &NoteCommand{factory: factory, formatter: NewResponseFormatter()}
}

func (c *NoteCommand) Name() string        { return "note" }
func (c *NoteCommand) Description() string { return "Attach a manual note to the context" }

func (c *NoteCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/note <text>"), nil
	}

	item := c.factory.FromManual(ctx, strings.Join(args, " "))
	return c.formatter.Success(fmt.Sprintf("Noted (relevance %d)", item.Relevance)), nil
}

// ContextCommand lists the attached items in store order.
type ContextCommand struct {
	store     *memory.Store
	formatter *ResponseFormatter
}

func NewContextCommand(store *memory.Store) *ContextCommand {
	return &ContextCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ContextCommand) Name() string        { return "context" }
func (c *ContextCommand) Description() string { return "List attached context items" }

func (c *ContextCommand) Execute(ctx context.Context, args []string) (string, error) {
	items := c.store.List()
	if len(items) == 0 {
		return "No context attached.", nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		label := item.Source.Label()
		if item.Path != "" {
			label = fmt.Sprintf("%s (%s)", label, item.Path)
		}
		lines = append(lines, fmt.Sprintf("`%s`  %s  relevance %d", shortID(item.ID), label, item.Relevance))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Context (%d/%d)", len(items), core.MaxContextItems)),
		c.formatter.List(lines),
	), nil
}

// RemoveCommand detaches one item by id (or unambiguous id prefix).
type RemoveCommand struct {
	store     *memory.Store
	formatter *ResponseFormatter
}

func NewRemoveCommand(store *memory.Store) *RemoveCommand {
	return &RemoveCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *RemoveCommand) Name() string        { return "remove" }
func (c *RemoveCommand) Description() string { return "Detach a context item by id" }

func (c *RemoveCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/remove <id>"), nil
	}

	id, err := c.resolveID(args[0])
	if err != nil {
		return "", err
	}
	if !c.store.Remove(ctx, id) {
		return fmt.Sprintf("No context item with id %s.", args[0]), nil
	}
	return c.formatter.Success("Context item removed"), nil
}

func (c *RemoveCommand) resolveID(prefix string) (string, error) {
	var match string
	for _, item := range c.store.List() {
		if !strings.HasPrefix(item.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = item.ID
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}

// ClearCommand empties the context store.
type ClearCommand struct {
	store     *memory.Store
	formatter *ResponseFormatter
}

func NewClearCommand(store *memory.Store) *ClearCommand {
	return &ClearCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Detach all context items" }

func (c *ClearCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.store.Clear(ctx)
	return c.formatter.Success("Context cleared"), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
