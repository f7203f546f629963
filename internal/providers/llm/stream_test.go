package llm

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func newAnthropicTestStream(raw string) *anthropicStream {
	body := io.NopCloser(strings.NewReader(raw))
	return &anthropicStream{body: body, scanner: bufio.NewScanner(body)}
}

func TestStream_Deltas(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"Hel"}}]}`,
		``,
		`data: {"choices":[{"delta":{"content":"lo"}}]}`,
		``,
		`data: {"choices":[{"delta":{}}]}`,
		``,
		`data: [DONE]`,
		``,
	}, "\n")

	s := newStream(io.NopCloser(strings.NewReader(raw)))
	defer s.Close()

	var got strings.Builder
	for {
		delta, err := s.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got.WriteString(delta)
	}

	if got.String() != "Hello" {
		t.Errorf("content = %q, want %q", got.String(), "Hello")
	}
}

func TestStream_EOFIsSticky(t *testing.T) {
	t.Parallel()
	s := newStream(io.NopCloser(strings.NewReader("data: [DONE]\n")))
	defer s.Close()

	if _, err := s.Recv(); err != io.EOF {
		t.Fatalf("first Recv = %v, want io.EOF", err)
	}
	if _, err := s.Recv(); err != io.EOF {
		t.Fatalf("second Recv = %v, want io.EOF", err)
	}
}

func TestStream_CloseWithoutSentinel(t *testing.T) {
	t.Parallel()
	raw := `data: {"choices":[{"delta":{"content":"partial"}}]}` + "\n"
	s := newStream(io.NopCloser(strings.NewReader(raw)))
	defer s.Close()

	delta, err := s.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != "partial" {
		t.Errorf("delta = %q, want %q", delta, "partial")
	}

	if _, err := s.Recv(); err != io.EOF {
		t.Fatalf("Recv after close = %v, want io.EOF", err)
	}
}

func TestStream_MalformedChunksSkipped(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		`: keep-alive comment`,
		`data: not-json`,
		`data: {"choices":[{"delta":{"content":"ok"}}]}`,
		`data: [DONE]`,
	}, "\n")

	s := newStream(io.NopCloser(strings.NewReader(raw)))
	defer s.Close()

	delta, err := s.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != "ok" {
		t.Errorf("delta = %q, want %q", delta, "ok")
	}
}

func TestAnthropicStream_Events(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		`event: message_start`,
		`data: {"type":"message_start"}`,
		``,
		`event: content_block_delta`,
		`data: {"type":"content_block_delta","delta":{"type":"text_delta","text":"Hi"}}`,
		``,
		`event: message_stop`,
		`data: {"type":"message_stop"}`,
		``,
	}, "\n")

	as := newAnthropicTestStream(raw)
	defer as.Close()

	delta, err := as.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != "Hi" {
		t.Errorf("delta = %q, want %q", delta, "Hi")
	}
	if _, err := as.Recv(); err != io.EOF {
		t.Fatalf("Recv after message_stop = %v, want io.EOF", err)
	}
}

func TestAnthropicStream_ErrorEventIsTerminal(t *testing.T) {
	t.Parallel()
	raw := `data: {"type":"error","error":{"message":"overloaded"}}` + "\n"

	as := newAnthropicTestStream(raw)
	defer as.Close()

	_, err := as.Recv()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected terminal error distinct from EOF, got %v", err)
	}
	if !strings.Contains(err.Error(), "overloaded") {
		t.Errorf("error %q should carry the server message", err)
	}

	// Terminal errors are sticky.
	if _, err2 := as.Recv(); err2 != err {
		t.Errorf("second Recv = %v, want the same terminal error", err2)
	}
}
