package state

import "context"

type modelSwitcher interface {
	SetModel(ctx context.Context, model string) error
}

// AppState is the explicitly constructed process-wide state: the
// active conversation and runtime model switching. It is built once
// during wiring and passed by reference; there is no package-level
// singleton and no hidden initialization order.
type AppState struct {
	provider           modelSwitcher
	activeConversation string
}

func New(provider modelSwitcher) *AppState {
	return &AppState{
		provider: provider,
	}
}

func (s *AppState) ChangeModel(ctx context.Context, model string) error {
	return s.provider.SetModel(ctx, model)
}

// ActiveConversation returns the id of the conversation follow-up
// sends append to, or "" when the next send starts a new one.
func (s *AppState) ActiveConversation() string {
	return s.activeConversation
}

func (s *AppState) SetActiveConversation(id string) {
	s.activeConversation = id
}
