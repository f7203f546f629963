package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/internal/service/memory"
)

// chatControl is the slice of the chat service the history commands
// need.
type chatControl interface {
	NewConversation()
	Resume(ctx context.Context, id string) ([]core.Message, error)
	ActiveTurns(ctx context.Context) ([]core.Message, error)
}

// HistoryCommand lists archived conversations, newest first.
type HistoryCommand struct {
	archive   core.ConversationRepository
	formatter *ResponseFormatter
}

func NewHistoryCommand(archive core.ConversationRepository) *HistoryCommand {
	return &HistoryCommand{archive: archive, formatter: NewResponseFormatter()}
}

func (c *HistoryCommand) Name() string        { return "history" }
func (c *HistoryCommand) Description() string { return "List archived conversations" }

func (c *HistoryCommand) Execute(ctx context.Context, args []string) (string, error) {
	conversations, err := c.archive.List(ctx)
	if err != nil {
		return "", err
	}
	if len(conversations) == 0 {
		return "No archived conversations.", nil
	}

	lines := make([]string, 0, len(conversations))
	for _, conv := range conversations {
		lines = append(lines, fmt.Sprintf("`%s`  %s  (%s)",
			conv.ID, conv.Title, conv.LastInteractionAt.Format(time.DateTime)))
	}

	return c.formatter.Combine(
		c.formatter.Info("History"),
		c.formatter.List(lines),
	), nil
}

// LoadCommand resumes an archived conversation and prints its turns.
type LoadCommand struct {
	chat      chatControl
	formatter *ResponseFormatter
}

func NewLoadCommand(chat chatControl) *LoadCommand {
	return &LoadCommand{chat: chat, formatter: NewResponseFormatter()}
}

func (c *LoadCommand) Name() string        { return "load" }
func (c *LoadCommand) Description() string { return "Resume an archived conversation" }

func (c *LoadCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/load <id>"), nil
	}

	turns, err := c.chat.Resume(ctx, args[0])
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(c.formatter.Success(fmt.Sprintf("Resumed conversation %s", args[0])))
	for _, t := range turns {
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", t.Role, t.Content))
	}
	return sb.String(), nil
}

// DeleteCommand removes an archived conversation.
type DeleteCommand struct {
	archive   core.ConversationRepository
	formatter *ResponseFormatter
}

func NewDeleteCommand(archive core.ConversationRepository) *DeleteCommand {
	return &DeleteCommand{archive: archive, formatter: NewResponseFormatter()}
}

func (c *DeleteCommand) Name() string        { return "delete" }
func (c *DeleteCommand) Description() string { return "Delete an archived conversation" }

func (c *DeleteCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/delete <id>"), nil
	}

	ok, err := c.archive.Delete(ctx, args[0])
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("No conversation with id %s.", args[0]), nil
	}
	return c.formatter.Success("Conversation deleted"), nil
}

// NewChatCommand detaches from the active conversation.
type NewChatCommand struct {
	chat      chatControl
	formatter *ResponseFormatter
}

func NewNewChatCommand(chat chatControl) *NewChatCommand {
	return &NewChatCommand{chat: chat, formatter: NewResponseFormatter()}
}

func (c *NewChatCommand) Name() string        { return "new" }
func (c *NewChatCommand) Description() string { return "Start a new conversation" }

func (c *NewChatCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.chat.NewConversation()
	return c.formatter.Success("Started a new conversation"), nil
}

// SaveCommand turns the active conversation into a context item, so a
// past discussion travels with future requests.
type SaveCommand struct {
	chat      chatControl
	factory   *memory.Factory
	formatter *ResponseFormatter
}

func NewSaveCommand(chat chatControl, factory *memory.Factory) *SaveCommand {
	return &SaveCommand{chat: chat, factory: factory, formatter: NewResponseFormatter()}
}

func (c *SaveCommand) Name() string        { return "save" }
func (c *SaveCommand) Description() string { return "Attach the active conversation as context" }

func (c *SaveCommand) Execute(ctx context.Context, args []string) (string, error) {
	turns, err := c.chat.ActiveTurns(ctx)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return "No active conversation to save.", nil
	}

	item := c.factory.FromConversation(ctx, turns)
	return c.formatter.Success(fmt.Sprintf("Conversation attached as context (relevance %d)", item.Relevance)), nil
}
