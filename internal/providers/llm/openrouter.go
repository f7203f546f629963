package llm

import "github.com/inkwell-sh/quill/internal/core"

// OpenRouter provider is implemented using OpenAICompatible.
type OpenRouter struct {
	*OpenAICompatible
}

// NewOpenRouter creates a new OpenRouter provider.
func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://openrouter.ai/api",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"X-Title": core.QuillName,
			},
		}),
	}
}
