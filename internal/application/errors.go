package application

import "errors"

var (
	// ErrSummaryUnavailable means no summary could be produced for the play.
	// Callers show the placeholder and may retry on a later request.
	ErrSummaryUnavailable = errors.New("play summary unavailable")
	ErrBannerNotFound     = errors.New("banner not found")

	ErrInvalidCredentials = errors.New("Invalid Username or Password")
	ErrInvalidSignup      = errors.New("invalid signup")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidSession     = errors.New("invalid session")

	ErrGameNotFound    = errors.New("game not found")
	ErrPlayNotFound    = errors.New("play not found")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrUnknownSide     = errors.New("unknown lineup side")

	ErrPublishingDisabled = errors.New("sheet publishing is not configured")
)
