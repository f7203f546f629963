package llm

// CustomOpenAI targets any self-hosted OpenAI-compatible endpoint
// (vLLM, LiteLLM, llama.cpp server).
type CustomOpenAI struct {
	*OpenAICompatible
}

// NewCustomOpenAI creates a provider for a custom base URL.
func NewCustomOpenAI(baseURL, apiKey, model string) *CustomOpenAI {
	cfg := OpenAICompatibleConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
	if apiKey != "" {
		cfg.AuthHeader = "Authorization"
		cfg.AuthPrefix = "Bearer "
	}
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
