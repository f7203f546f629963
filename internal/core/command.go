package core

import "context"

// Command is one slash-command trigger consumed by the chat surface.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) (string, error)
}
