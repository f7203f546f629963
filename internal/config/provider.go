package config

import (
	"context"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/inkwell-sh/quill/pkg/log"
)

// ProviderConfig selects the completion endpoint and carries its
// credentials. Model is mutable at runtime via the /model command.
type ProviderConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"openrouter"`
	Model    string `env:"LLM_MODEL" envDefault:"openai/gpt-4o-mini"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"OLLAMA_API_KEY"`
	CustomBaseURL    string `env:"CUSTOM_BASE_URL"`
	CustomAPIKey     string `env:"CUSTOM_API_KEY"`

	mu sync.RWMutex
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c *ProviderConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *ProviderConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

func (c *ProviderConfig) SetModel(model string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
	return nil
}

func (c *ProviderConfig) GetOpenAIAPIKey() string     { return c.OpenAIAPIKey }
func (c *ProviderConfig) GetAnthropicAPIKey() string  { return c.AnthropicAPIKey }
func (c *ProviderConfig) GetOpenRouterAPIKey() string { return c.OpenRouterAPIKey }
func (c *ProviderConfig) GetOllamaBaseURL() string    { return c.OllamaBaseURL }
func (c *ProviderConfig) GetOllamaAPIKey() string     { return c.OllamaAPIKey }
func (c *ProviderConfig) GetCustomBaseURL() string    { return c.CustomBaseURL }
func (c *ProviderConfig) GetCustomAPIKey() string     { return c.CustomAPIKey }
