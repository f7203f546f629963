package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/inkwell-sh/quill/internal/core"
)

type OpenAICompatible struct {
	baseProvider
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	var mutators []RequestMutator
	if cfg.AuthHeader != "" && cfg.APIKey != "" {
		mutators = append(mutators, func(req *http.Request) {
			req.Header.Set(cfg.AuthHeader, cfg.AuthPrefix+cfg.APIKey)
		})
	}
	if len(cfg.ExtraHeaders) > 0 {
		mutators = append(mutators, func(req *http.Request) {
			for k, v := range cfg.ExtraHeaders {
				req.Header.Set(k, v)
			}
		})
	}

	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, mutators...),
	}
}

func (o *OpenAICompatible) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
	}

	data, err := o.postJSON(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return core.Message{}, err
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message, nil
}

func (o *OpenAICompatible) ChatStream(ctx context.Context, history []core.Message) (core.StreamRecv, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
		"stream":   true,
	}

	body, err := o.postStream(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return nil, err
	}
	return newStream(body), nil
}

func (o *OpenAICompatible) Models(ctx context.Context) ([]core.Model, error) {
	data, err := o.get(ctx, "/v1/models")
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}

	var apiResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}

	models := make([]core.Model, 0, len(apiResp.Data))
	for _, m := range apiResp.Data {
		models = append(models, core.Model{
			ID:   m.ID,
			Name: m.ID,
		})
	}
	return models, nil
}
