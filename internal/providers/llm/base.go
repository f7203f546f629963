package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inkwell-sh/quill/internal/core"
	"github.com/inkwell-sh/quill/pkg/retry"
)

// RequestMutator adjusts an outbound request before it is sent. Used
// for auth headers and provider-specific attribution headers.
type RequestMutator func(*http.Request)

// baseProvider is the narrow transport wrapper shared by all providers:
// get, post-with-JSON-body, post-with-streaming-body. Nothing else of
// the underlying client is exposed.
type baseProvider struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	model    string
	mutators []RequestMutator
	retrier  *retry.Retrier
}

func newBaseProvider(baseURL, apiKey, model string, mutators ...RequestMutator) baseProvider {
	return baseProvider{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL:  baseURL,
		apiKey:   apiKey,
		model:    model,
		mutators: mutators,
		retrier:  retry.NewDefaultRetrier(),
	}
}

func (b *baseProvider) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyData []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyData = data
	}

	var bodyReader io.Reader
	if bodyData != nil {
		bodyReader = bytes.NewReader(bodyData)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.QuillUserAgent)
	for _, mutate := range b.mutators {
		mutate(req)
	}
	return req, nil
}

// get issues a GET and returns the response body or a classified error.
func (b *baseProvider) get(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := b.retrier.Do(ctx, func() error {
		var opErr error
		data, opErr = b.roundTrip(ctx, http.MethodGet, path, nil)
		return permanentUnlessTransient(opErr)
	})
	return data, err
}

// postJSON issues a POST with a JSON body and returns the response
// body or a classified error.
func (b *baseProvider) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	var data []byte
	err := b.retrier.Do(ctx, func() error {
		var opErr error
		data, opErr = b.roundTrip(ctx, http.MethodPost, path, body)
		return permanentUnlessTransient(opErr)
	})
	return data, err
}

// postStream issues a POST and hands the open response body to the
// caller. Classification applies to the status line; the body is only
// returned on success and must be closed by the caller. Not retried:
// a stream is non-restartable once deltas may have been consumed.
func (b *baseProvider) postStream(ctx context.Context, path string, body any) (io.ReadCloser, error) {
	req, err := b.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, classifyStatus(resp.StatusCode, data)
	}
	return resp.Body, nil
}

func (b *baseProvider) roundTrip(ctx context.Context, method, path string, body any) ([]byte, error) {
	req, err := b.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		// Network-level failures are treated as transient.
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, data)
	}
	return data, nil
}

func permanentUnlessTransient(err error) error {
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return err
	}
	return &retry.Permanent{Err: err}
}
