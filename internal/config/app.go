package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/inkwell-sh/quill/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"QUILL_RUNTIME_PATH" envDefault:".quill"`

	// Context Management. The window size budgets conversation turns per
	// request; the context store's item ceiling is a separate fixed constant.
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"30"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

// GetHistoryPath is the directory holding one JSON file per conversation.
func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "history")
}

// GetStatePath is the directory backing the key-value blob store.
func (c AppConfig) GetStatePath() string {
	return filepath.Join(c.RuntimePath, "state")
}
