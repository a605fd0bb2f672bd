package mlbstats

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("mlbstats: not found")

// StatusError is returned for non-200 responses other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mlbstats: unexpected status %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether a failed call is worth repeating.
func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}
