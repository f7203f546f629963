package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/pkg/retry"
)

// noRetry swaps the default retrier for one that never sleeps.
func noRetry(p *OpenAICompatible) {
	p.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 0})
}

func compatTestProvider(t *testing.T, handler http.Handler) *OpenAICompatible {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
	noRetry(p)
	return p
}

func TestOpenAICompatible_Chat(t *testing.T) {
	t.Parallel()

	p := compatTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q, want bearer token", got)
		}

		var payload struct {
			Model    string         `json:"model"`
			Messages []core.Message `json:"messages"`
			Stream   bool           `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Stream {
			t.Error("stream should be false for Chat")
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != core.RoleSystem {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`)
	}))

	got, err := p.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "context"},
		{Role: core.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got.Content != "hi there" {
		t.Errorf("content = %q, want %q", got.Content, "hi there")
	}
}

func TestOpenAICompatible_ChatStream(t *testing.T) {
	t.Parallel()

	p := compatTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Stream bool `json:"stream"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		if !payload.Stream {
			t.Error("stream should be true for ChatStream")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))

	stream, err := p.ChatStream(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("ChatStream failed: %v", err)
	}
	defer stream.Close()

	var content string
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv failed: %v", err)
		}
		content += delta
	}
	if content != "ab" {
		t.Errorf("content = %q, want %q", content, "ab")
	}
}

func TestOpenAICompatible_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := compatTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))

			_, err := p.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "x"}})
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v, want class %v", err, tt.want)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %v should carry *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
		})
	}
}

func TestOpenAICompatible_RetriesTransientOnly(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	t.Cleanup(server.Close)

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL: server.URL,
		Model:   "test-model",
	})
	p.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 2, BackoffFactor: 1.0})

	got, err := p.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "x"}})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got.Content != "ok" {
		t.Errorf("content = %q, want ok", got.Content)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls)
	}

	// A 400 must not be retried.
	calls = 0
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	t.Cleanup(badServer.Close)

	bad := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: badServer.URL, Model: "m"})
	bad.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 2, BackoffFactor: 1.0})

	if _, err := bad.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "x"}}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("error = %v, want ErrBadRequest", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent failure)", calls)
	}
}

func TestOpenAICompatible_Models(t *testing.T) {
	t.Parallel()

	p := compatTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		fmt.Fprint(w, `{"data":[{"id":"model-a"},{"id":"model-b"}]}`)
	}))

	models, err := p.Models(context.Background())
	if err != nil {
		t.Fatalf("Models failed: %v", err)
	}
	if len(models) != 2 || models[0].ID != "model-a" {
		t.Errorf("unexpected models: %+v", models)
	}
}
