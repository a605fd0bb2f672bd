package application

import (
	"context"
	"errors"
	"fmt"

	"playbook/internal/mlbstats"
	"playbook/internal/models"
)

// PlayCard is one rendered play: the play itself, its summary when one could
// be produced and a banner reference that is never empty.
type PlayCard struct {
	Play    models.Play         `json:"play"`
	Summary *models.PlaySummary `json:"summary"`
	Banner  models.BannerRef    `json:"banner"`
}

type PlayFeed struct {
	Game     *models.GameFeed `json:"game"`
	Language models.Language  `json:"language"`
	Plays    []PlayCard       `json:"plays"`
}

// FeedService runs the render pass over the latest plays of a game.
type FeedService struct {
	stats        StatsProvider
	summaries    *SummaryService
	banners      *BannerService
	defaultLimit int
	logger       Logger
}

func NewFeedService(stats StatsProvider, summaries *SummaryService, banners *BannerService, defaultLimit int, logger Logger) *FeedService {
	if defaultLimit <= 0 {
		defaultLimit = defaultPlayLimit
	}
	return &FeedService{
		stats:        stats,
		summaries:    summaries,
		banners:      banners,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Game fetches the live feed of a game.
func (s *FeedService) Game(ctx context.Context, gamePK int) (*models.GameFeed, error) {
	feed, err := s.stats.LiveFeed(ctx, gamePK)
	if errors.Is(err, mlbstats.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("live feed %d: %w", gamePK, err)
	}
	return feed, nil
}

// RenderPlays walks the latest limit plays, newest first, one at a time.
// A play whose summary or banner cannot be produced is still returned with
// a nil summary and the placeholder banner.
func (s *FeedService) RenderPlays(ctx context.Context, lang models.Language, gamePK, limit int) (*PlayFeed, error) {
	if !lang.Valid() {
		return nil, models.ErrUnsupportedLanguage
	}

	feed, err := s.Game(ctx, gamePK)
	if err != nil {
		return nil, err
	}

	plays := feed.LatestPlays(s.limit(limit))
	out := &PlayFeed{Game: feed, Language: lang, Plays: make([]PlayCard, 0, len(plays))}
	for _, play := range plays {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Plays = append(out.Plays, s.render(ctx, lang, gamePK, play))
	}
	return out, nil
}

// RenderPlay renders a single play of a game.
func (s *FeedService) RenderPlay(ctx context.Context, lang models.Language, gamePK int, playID string) (*PlayCard, error) {
	if !lang.Valid() {
		return nil, models.ErrUnsupportedLanguage
	}

	feed, err := s.Game(ctx, gamePK)
	if err != nil {
		return nil, err
	}
	play, ok := feed.FindPlay(playID)
	if !ok {
		return nil, ErrPlayNotFound
	}

	card := s.render(ctx, lang, gamePK, play)
	return &card, nil
}

func (s *FeedService) render(ctx context.Context, lang models.Language, gamePK int, play models.Play) PlayCard {
	card := PlayCard{Play: play}

	summary, err := s.summaries.EnsureSummary(ctx, lang, gamePK, play)
	if err != nil {
		s.logger.Warn("render %d/%s: no summary: %v", gamePK, play.ID, err)
	} else {
		card.Summary = summary
	}

	prompt := ""
	if card.Summary != nil {
		prompt = card.Summary.ImagePrompt
	}
	card.Banner = s.banners.EnsureBanner(ctx, gamePK, play.ID, prompt)
	return card
}

func (s *FeedService) limit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > maxPlayLimit:
		return maxPlayLimit
	default:
		return limit
	}
}
