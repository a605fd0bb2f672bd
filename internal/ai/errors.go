package ai

import (
	"errors"

	"github.com/google/generative-ai-go/genai"
)

var (
	// ErrContentBlocked means a safety filter refused the prompt or the output.
	ErrContentBlocked = errors.New("ai: content blocked by safety filter")
	ErrEmptyResponse  = errors.New("ai: empty response")
)

// IsBlocked reports whether err is a safety rejection.
func IsBlocked(err error) bool {
	if errors.Is(err, ErrContentBlocked) {
		return true
	}
	var blocked *genai.BlockedError
	return errors.As(err, &blocked)
}
