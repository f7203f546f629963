package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes for completion endpoint responses. Callers branch on
// these with errors.Is; only ErrUnavailable is worth retrying.
var (
	ErrUnauthorized = errors.New("llm: unauthorized")
	ErrRateLimited  = errors.New("llm: rate limited")
	ErrBadRequest   = errors.New("llm: bad request")
	ErrUnavailable  = errors.New("llm: service unavailable")
)

// APIError carries the raw status and body alongside its class.
type APIError struct {
	Status int
	Body   string
	kind   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// classifyStatus maps a non-2xx response onto the failure taxonomy.
func classifyStatus(status int, body []byte) error {
	e := &APIError{Status: status, Body: string(body)}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.kind = ErrUnauthorized
	case status == http.StatusTooManyRequests:
		e.kind = ErrRateLimited
	case status >= 500:
		e.kind = ErrUnavailable
	default:
		e.kind = ErrBadRequest
	}
	return e
}

// IsTransient reports whether a request is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
