package llm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// streamDone is the sentinel token closing an SSE completion stream.
const streamDone = "[DONE]"

// Stream consumes an OpenAI-style SSE body as a lazy, finite,
// non-restartable sequence of content deltas. Recv returns io.EOF
// after the sentinel token or stream close; any other error is
// terminal and sticky.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	err     error
}

func newStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	// Single deltas can exceed the default token size on long code spans.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{
		body:    body,
		scanner: scanner,
	}
}

// Recv returns the next non-empty content delta.
func (s *Stream) Recv() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == streamDone {
			s.err = io.EOF
			return "", s.err
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Keep-alive noise and vendor extensions are skipped, not fatal.
			continue
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("stream read: %w", err)
	} else {
		// Server closed the stream without the sentinel; treat as done.
		s.err = io.EOF
	}
	return "", s.err
}

func (s *Stream) Close() error {
	return s.body.Close()
}
