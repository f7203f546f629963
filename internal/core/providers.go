package core

import "context"

// StreamRecv yields the next content delta of an in-flight completion.
// It returns io.EOF after the final delta; any other error is terminal
// and distinct from normal completion. A stream is finite and cannot
// be restarted.
type StreamRecv interface {
	Recv() (string, error)
	Close() error
}

// AIProvider is the completion endpoint boundary.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
	ChatStream(ctx context.Context, history []Message) (StreamRecv, error)
	Models(ctx context.Context) ([]Model, error)
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(model string) error
	GetOpenAIAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
	GetOllamaAPIKey() string
	GetCustomBaseURL() string
	GetCustomAPIKey() string
}

type AppState interface {
	ChangeModel(ctx context.Context, model string) error
	ActiveConversation() string
	SetActiveConversation(id string)
}
