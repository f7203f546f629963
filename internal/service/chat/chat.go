package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inkwell-sh/quill/internal/config"
	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/internal/service/memory"
	"github.com/inkwell-sh/quill/pkg/log"
)

// DeltaFunc receives streamed content fragments as they arrive.
type DeltaFunc func(delta string)

// Service orchestrates one send: serialize the context store, prepend
// it to the live turns, call the provider, archive the result.
type Service struct {
	cfg      *config.AppConfig
	provider core.AIProvider
	store    *memory.Store
	archive  core.ConversationRepository
	state    core.AppState
}

func NewService(
	cfg *config.AppConfig,
	provider core.AIProvider,
	store *memory.Store,
	archive core.ConversationRepository,
	state core.AppState,
) *Service {
	return &Service{
		cfg:      cfg,
		provider: provider,
		store:    store,
		archive:  archive,
		state:    state,
	}
}

// Send submits a user message within the active conversation, creating
// one on first send. When onDelta is non-nil the provider is streamed
// and fragments are forwarded as they arrive; the returned message is
// the complete reply either way. Archival failures degrade to a logged
// warning; the reply is still returned.
func (s *Service) Send(ctx context.Context, text string, onDelta DeltaFunc) (core.Message, error) {
	turns, err := s.currentTurns(ctx)
	if err != nil {
		return core.Message{}, err
	}
	turns = append(turns, core.Message{Role: core.RoleUser, Content: text})

	reply, err := s.complete(ctx, s.buildRequest(turns), onDelta)
	if err != nil {
		return core.Message{}, err
	}
	turns = append(turns, reply)

	s.archiveTurns(ctx, turns)
	return reply, nil
}

// buildRequest assembles the outbound message list: the zero-or-one
// synthetic context message, then the live turns in chronological
// order. The configured window size budgets turns only; it has no say
// over the context store's item count.
func (s *Service) buildRequest(turns []core.Message) []core.Message {
	window := s.cfg.GetContextWindowSize()
	if window > 0 && len(turns) > window {
		turns = turns[len(turns)-window:]
	}

	messages := make([]core.Message, 0, len(turns)+1)
	if sys, ok := s.store.Serialize(); ok {
		messages = append(messages, sys)
	}
	return append(messages, turns...)
}

func (s *Service) complete(ctx context.Context, messages []core.Message, onDelta DeltaFunc) (core.Message, error) {
	if onDelta == nil {
		return s.provider.Chat(ctx, messages)
	}

	stream, err := s.provider.ChatStream(ctx, messages)
	if err != nil {
		return core.Message{}, err
	}
	defer stream.Close()

	var full strings.Builder
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.Message{}, fmt.Errorf("completion stream: %w", err)
		}
		full.WriteString(delta)
		onDelta(delta)
	}

	return core.Message{Role: core.RoleAssistant, Content: full.String()}, nil
}

// currentTurns loads the active conversation's messages. A vanished
// record resets to a fresh conversation rather than failing the send.
func (s *Service) currentTurns(ctx context.Context) ([]core.Message, error) {
	id := s.state.ActiveConversation()
	if id == "" {
		return nil, nil
	}

	conv, err := s.archive.Load(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.FromCtx(ctx).Warn().Str("id", id).Msg("active conversation vanished, starting fresh")
			s.state.SetActiveConversation("")
			return nil, nil
		}
		return nil, err
	}
	return conv.Messages, nil
}

// archiveTurns mirrors the full turn list to the history archive,
// creating the conversation on first send. Best effort.
func (s *Service) archiveTurns(ctx context.Context, turns []core.Message) {
	logger := log.FromCtx(ctx)
	id := s.state.ActiveConversation()

	if id == "" {
		conv, err := s.archive.Create(ctx, "", turns)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create conversation record")
			return
		}
		s.state.SetActiveConversation(conv.ID)
		return
	}

	if _, err := s.archive.UpdateMessages(ctx, id, turns); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			logger.Warn().Err(err).Str("id", id).Msg("failed to update conversation record")
			return
		}
		// Record vanished between load and update; recreate it.
		conv, err := s.archive.Create(ctx, "", turns)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to recreate vanished conversation")
			return
		}
		s.state.SetActiveConversation(conv.ID)
	}
}

// NewConversation detaches from the active conversation; the next
// send starts a new one. Any in-flight send keeps writing to the old
// record and its result is simply ignored.
func (s *Service) NewConversation() {
	s.state.SetActiveConversation("")
}

// Resume makes an archived conversation the active one and returns
// its turns for display.
func (s *Service) Resume(ctx context.Context, id string) ([]core.Message, error) {
	conv, err := s.archive.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.state.SetActiveConversation(conv.ID)
	return conv.Messages, nil
}

// ActiveTurns returns the active conversation's messages, or nil when
// no conversation is active.
func (s *Service) ActiveTurns(ctx context.Context) ([]core.Message, error) {
	return s.currentTurns(ctx)
}
