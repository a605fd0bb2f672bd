package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playbook/internal/mlbstats"
	"playbook/internal/models"
)

// ChatService answers free-text questions about a single play.
type ChatService struct {
	stats     StatsProvider
	answerer  PlayAnswerer
	summaries *SummaryService
	logger    Logger
}

func NewChatService(stats StatsProvider, answerer PlayAnswerer, summaries *SummaryService, logger Logger) *ChatService {
	return &ChatService{stats: stats, answerer: answerer, summaries: summaries, logger: logger}
}

// Ask grounds the question on the play data and, when cached, its summary in
// the viewer's language or the base language. It never generates a summary.
func (s *ChatService) Ask(ctx context.Context, lang models.Language, gamePK int, playID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" || len(question) > maxQuestionLength {
		return "", ErrInvalidQuestion
	}

	feed, err := s.stats.LiveFeed(ctx, gamePK)
	if errors.Is(err, mlbstats.ErrNotFound) {
		return "", ErrGameNotFound
	}
	if err != nil {
		return "", fmt.Errorf("live feed %d: %w", gamePK, err)
	}
	play, ok := feed.FindPlay(playID)
	if !ok {
		return "", ErrPlayNotFound
	}

	summary, found := s.summaries.Cached(ctx, models.SummaryKey{GamePK: gamePK, PlayID: playID, Language: lang})
	if !found && lang != models.BaseLanguage {
		summary, _ = s.summaries.Cached(ctx, models.SummaryKey{GamePK: gamePK, PlayID: playID, Language: models.BaseLanguage})
	}

	answer, err := s.answerer.Ask(ctx, play, summary, question)
	if err != nil {
		s.logger.Warn("ask %d/%s: %v", gamePK, playID, err)
		return "", fmt.Errorf("ask: %w", err)
	}
	return answer, nil
}
