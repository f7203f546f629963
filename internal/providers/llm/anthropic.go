package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/inkwell-sh/quill/internal/core"
)

const anthropicVersion = "2023-06-01"

type Anthropic struct {
	baseProvider
}

func NewAnthropic(apiKey, model string) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("https://api.anthropic.com", apiKey, model,
			func(req *http.Request) {
				req.Header.Set("x-api-key", apiKey)
				req.Header.Set("anthropic-version", anthropicVersion)
			},
		),
	}
}

// buildPayload converts the wire history to Anthropic's shape: system
// turns move into the top-level system field.
func (a *Anthropic) buildPayload(history []core.Message, stream bool) map[string]any {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	var system string
	var messages []msg
	for _, m := range history {
		if m.Role == core.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		messages = append(messages, msg{Role: m.Role, Content: m.Content})
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": 4096,
		"messages":   messages,
	}
	if system != "" {
		payload["system"] = system
	}
	if stream {
		payload["stream"] = true
	}
	return payload
}

func (a *Anthropic) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	data, err := a.postJSON(ctx, "/v1/messages", a.buildPayload(history, false))
	if err != nil {
		return core.Message{}, err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}

	var text string
	for _, c := range result.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}
	return core.Message{Role: core.RoleAssistant, Content: text}, nil
}

func (a *Anthropic) ChatStream(ctx context.Context, history []core.Message) (core.StreamRecv, error) {
	body, err := a.postStream(ctx, "/v1/messages", a.buildPayload(history, true))
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &anthropicStream{body: body, scanner: scanner}, nil
}

// anthropicStream adapts Anthropic's event-typed SSE to the delta
// sequence contract. message_stop plays the role of the done sentinel.
type anthropicStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	err     error
}

func (s *anthropicStream) Recv() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event struct {
			Type  string `json:"type"`
			Delta struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"delta"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue
		}

		switch event.Type {
		case "content_block_delta":
			if event.Delta.Text != "" {
				return event.Delta.Text, nil
			}
		case "message_stop":
			s.err = io.EOF
			return "", s.err
		case "error":
			s.err = fmt.Errorf("stream error: %s", event.Error.Message)
			return "", s.err
		}
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("stream read: %w", err)
	} else {
		s.err = io.EOF
	}
	return "", s.err
}

func (s *anthropicStream) Close() error {
	return s.body.Close()
}

func (a *Anthropic) Models(ctx context.Context) ([]core.Model, error) {
	var models []core.Model
	afterID := ""

	for {
		path := "/v1/models?limit=1000"
		if afterID != "" {
			path = fmt.Sprintf("%s&after_id=%s", path, url.QueryEscape(afterID))
		}

		data, err := a.get(ctx, path)
		if err != nil {
			return nil, err
		}

		var result struct {
			Data []struct {
				ID          string `json:"id"`
				DisplayName string `json:"display_name"`
			} `json:"data"`
			HasMore bool   `json:"has_more"`
			LastID  string `json:"last_id"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode models response: %w", err)
		}

		for _, m := range result.Data {
			models = append(models, core.Model{
				ID:   m.ID,
				Name: m.DisplayName,
			})
		}

		if !result.HasMore || result.LastID == "" {
			break
		}
		afterID = result.LastID
	}

	return models, nil
}
