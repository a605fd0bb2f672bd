package models

import (
	"errors"
	"time"
)

var ErrIncompleteSummary = errors.New("summary is missing required fields")

// PlaySummary is the generated analysis of one play in one language.
type PlaySummary struct {
	GamePK                  int       `json:"game_pk" db:"game_pk"`
	PlayID                  string    `json:"play_id" db:"play_id"`
	Language                Language  `json:"language" db:"language"`
	Title                   string    `json:"title" db:"title"`
	Setup                   string    `json:"setup" db:"setup"`
	SummaryOfPlayEvents     string    `json:"summary_of_play_events" db:"summary_of_play_events"`
	Outcome                 string    `json:"outcome" db:"outcome"`
	OverallStrategyInsights string    `json:"overall_strategy_insights" db:"overall_strategy_insights"`
	ImagePrompt             string    `json:"image_prompt" db:"image_prompt"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the fields the generator schema marks as required. Title is optional.
func (s *PlaySummary) Validate() error {
	if s.Setup == "" || s.SummaryOfPlayEvents == "" || s.Outcome == "" ||
		s.OverallStrategyInsights == "" || s.ImagePrompt == "" {
		return ErrIncompleteSummary
	}
	return nil
}

// TranslatableFields returns pointers to every field that gets translated.
// ImagePrompt is deliberately absent.
func (s *PlaySummary) TranslatableFields() []*string {
	return []*string{
		&s.Title,
		&s.Setup,
		&s.SummaryOfPlayEvents,
		&s.Outcome,
		&s.OverallStrategyInsights,
	}
}

// SummaryKey identifies one language variant of a play summary.
type SummaryKey struct {
	GamePK   int
	PlayID   string
	Language Language
}
