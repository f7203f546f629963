package core

import "context"

// BlobStore is the host key-value storage boundary. The context item
// collection round-trips as one opaque blob under a single fixed key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ConversationRepository is durable CRUD over whole conversations,
// one record per conversation, independent of the context store.
type ConversationRepository interface {
	List(ctx context.Context) ([]Conversation, error)
	Load(ctx context.Context, id string) (Conversation, error)
	Create(ctx context.Context, title string, messages []Message) (Conversation, error)
	UpdateMessages(ctx context.Context, id string, messages []Message) (Conversation, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FileReader resolves file content for add-from-file triggers.
type FileReader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}
