package histfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/pkg/log"
)

// Archive stores one JSON file per conversation, named by the
// conversation id. The files are the source of truth; nothing is
// cached between operations.
type Archive struct {
	dir string
	now func() time.Time
}

func NewArchive(dir string) *Archive {
	return &Archive{
		dir: dir,
		now: time.Now,
	}
}

func (a *Archive) path(id string) string {
	return filepath.Join(a.dir, id+".json")
}

// List returns all conversations sorted by last interaction,
// newest first. Unreadable or corrupt records are skipped and logged,
// never fatal.
func (a *Archive) List(ctx context.Context) ([]core.Conversation, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	logger := log.FromCtx(ctx)
	var conversations []core.Conversation
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(a.dir, entry.Name()))
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable conversation")
			continue
		}

		var conv core.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("skipping corrupt conversation")
			continue
		}
		conversations = append(conversations, conv)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastInteractionAt.After(conversations[j].LastInteractionAt)
	})
	return conversations, nil
}

// Load reads a single conversation by id.
func (a *Archive) Load(ctx context.Context, id string) (core.Conversation, error) {
	data, err := os.ReadFile(a.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return core.Conversation{}, fmt.Errorf("conversation %s: %w", id, core.ErrNotFound)
		}
		return core.Conversation{}, fmt.Errorf("failed to read conversation: %w", err)
	}

	var conv core.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return core.Conversation{}, fmt.Errorf("corrupt conversation %s: %w", id, err)
	}
	return conv, nil
}

// Create persists a new conversation. An empty title is derived from
// the first user turn. The id is the creation timestamp in
// milliseconds, nudged forward on the rare same-millisecond collision.
func (a *Archive) Create(ctx context.Context, title string, messages []core.Message) (core.Conversation, error) {
	if title == "" {
		title = TitleFor(messages)
	}

	createdAt := a.now()
	id := strconv.FormatInt(createdAt.UnixMilli(), 10)
	for {
		if _, err := os.Stat(a.path(id)); os.IsNotExist(err) {
			break
		}
		createdAt = createdAt.Add(time.Millisecond)
		id = strconv.FormatInt(createdAt.UnixMilli(), 10)
	}

	conv := core.Conversation{
		ID:                id,
		Title:             title,
		LastInteractionAt: a.now(),
		Messages:          messages,
	}
	if err := a.write(conv); err != nil {
		return core.Conversation{}, err
	}
	return conv, nil
}

// UpdateMessages replaces a conversation's messages wholesale and
// bumps its interaction time. Returns core.ErrNotFound if the record
// vanished concurrently.
func (a *Archive) UpdateMessages(ctx context.Context, id string, messages []core.Message) (core.Conversation, error) {
	conv, err := a.Load(ctx, id)
	if err != nil {
		return core.Conversation{}, err
	}

	conv.Messages = messages
	conv.LastInteractionAt = a.now()
	if err := a.write(conv); err != nil {
		return core.Conversation{}, err
	}
	return conv, nil
}

// Delete removes a conversation, reporting whether a record existed.
func (a *Archive) Delete(ctx context.Context, id string) (bool, error) {
	err := os.Remove(a.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete conversation: %w", err)
	}
	return true, nil
}

func (a *Archive) write(conv core.Conversation) error {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	if err := os.WriteFile(a.path(conv.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}
	return nil
}
