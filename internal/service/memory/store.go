package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/pkg/log"
)

// blobKey is the single fixed key the whole item collection lives
// under in host key-value storage. The blob carries no version field;
// schema changes must stay additive.
const blobKey = "context-items"

// Store holds the bounded in-memory context item collection and owns
// the pruning policy. It assumes the single-writer execution model of
// the chat loop; persistence is a best-effort mirror, not a second
// owner.
type Store struct {
	items []core.ContextItem
	blob  core.BlobStore

	// injectable for tests
	now   func() int64
	newID func() string
}

func NewStore(blob core.BlobStore) *Store {
	return &Store{
		blob:  blob,
		now:   func() int64 { return time.Now().UnixMilli() },
		newID: uuid.NewString,
	}
}

// Restore loads the persisted collection. A missing or corrupt blob
// degrades to an empty store, never an error.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.blob.Get(ctx, blobKey)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to load context items")
		}
		return
	}

	var items []core.ContextItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("corrupt context blob, starting empty")
		return
	}
	s.items = items
}

// Candidate is a context item before the store assigns identity.
type Candidate struct {
	Source    core.ContextSource
	Content   string
	Relevance int
	Path      string
}

// Add stores a candidate, prunes over-capacity items and mirrors the
// collection to storage. It never rejects: adding at capacity still
// adds, then evicts the oldest item.
func (s *Store) Add(ctx context.Context, c Candidate) core.ContextItem {
	item := core.ContextItem{
		ID:        s.newID(),
		Source:    c.Source,
		Content:   c.Content,
		Relevance: c.Relevance,
		Timestamp: s.now(),
		Path:      c.Path,
	}

	s.items = append(s.items, item)
	s.prune()
	s.persist(ctx)
	return item
}

// Remove deletes the item with the given id, reporting whether a
// removal occurred.
func (s *Store) Remove(ctx context.Context, id string) bool {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Clear empties the collection unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// List returns a defensive copy in current internal order. Callers
// needing relevance order must sort; Serialize already does.
func (s *Store) List() []core.ContextItem {
	out := make([]core.ContextItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

// prune enforces the capacity ceiling in two phases: eviction is
// strictly recency-based (a highly relevant old item loses to a
// low-relevance new one), then the survivors are re-ordered by
// relevance for presentation. Intentional policy; keep both phases.
func (s *Store) prune() {
	if len(s.items) <= core.MaxContextItems {
		return
	}

	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Timestamp < s.items[j].Timestamp
	})
	s.items = s.items[len(s.items)-core.MaxContextItems:]

	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Relevance > s.items[j].Relevance
	})
}

// persist mirrors the collection to host storage. Fire-and-forget: a
// write failure is logged and the in-memory mutation stands.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to marshal context items")
		return
	}
	if err := s.blob.Put(ctx, blobKey, data); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to persist context items")
	}
}
