package llm

// Ollama provider talks to a local or remote Ollama instance through
// its OpenAI-compatible endpoint.
type Ollama struct {
	*OpenAICompatible
}

// NewOllama creates a new Ollama provider. The API key is optional and
// only sent when set (remote instances behind a proxy).
func NewOllama(baseURL, apiKey, model string) *Ollama {
	cfg := OpenAICompatibleConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
	if apiKey != "" {
		cfg.AuthHeader = "Authorization"
		cfg.AuthPrefix = "Bearer "
	}
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
