package application

import (
	"context"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"
	"playbook/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// StatsProvider reads game data from the MLB Stats API.
type StatsProvider interface {
	LiveFeed(ctx context.Context, gamePK int) (*models.GameFeed, error)
	Schedule(ctx context.Context, date time.Time) ([]models.ScheduledGame, error)
	SeasonSchedule(ctx context.Context, year int) ([]models.ScheduledGame, error)
	Teams(ctx context.Context) ([]models.Team, error)
	Highlights(ctx context.Context, gamePK int) ([]models.Highlight, error)
}

type SummaryGenerator interface {
	GeneratePlaySummary(ctx context.Context, play models.Play) (*models.PlaySummary, error)
}

type PlayAnswerer interface {
	Ask(ctx context.Context, play models.Play, summary *models.PlaySummary, question string) (string, error)
}

type ImageGenerator interface {
	GenerateBanner(ctx context.Context, prompt string) ([]byte, error)
}

type Thumbnailer interface {
	Thumbnail(data []byte) ([]byte, error)
}

type Translator interface {
	Translate(ctx context.Context, text string, target models.Language) (string, error)
}

type ObjectStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Upload(ctx context.Context, name string, data []byte) error
	Download(ctx context.Context, name string) ([]byte, error)
}

// SheetPublisher mirrors rows into a shared spreadsheet and returns its URL.
type SheetPublisher interface {
	Publish(ctx context.Context, title string, rows [][]interface{}) (string, error)
}

type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	LookupUser(ctx context.Context, userID string) (*models.Identity, error)
	CreateAccount(ctx context.Context, userID string, signup models.Signup) (*models.Identity, error)
}

// Deps are the adapters the services run on.
type Deps struct {
	Stats      StatsProvider
	Generator  SummaryGenerator
	Answerer   PlayAnswerer
	Images     ImageGenerator
	Thumbnails Thumbnailer
	Translator Translator
	Objects    ObjectStore
	Identity   IdentityProvider
	Sheets     SheetPublisher
	Summaries  repository.Summary
	Users      repository.User
	Teams      *repository.TeamCache
	Metrics    *metrics.Recorder
}

type Options struct {
	BannerPrefix     string
	DefaultPlayLimit int
	SessionSecret    string
	SessionTTL       time.Duration
}

type Service struct {
	Summaries *SummaryService
	Banners   *BannerService
	Feed      *FeedService
	Auth      *AuthService
	Games     *GameService
	Chat      *ChatService
}

func NewService(deps Deps, opts Options, logger Logger) *Service {
	summaries := NewSummaryService(deps.Summaries, deps.Generator, deps.Translator, deps.Metrics, logger)
	banners := NewBannerService(deps.Objects, deps.Images, deps.Thumbnails, opts.BannerPrefix, deps.Metrics, logger)
	games := NewGameService(deps.Stats, deps.Teams, logger)
	games.publisher = deps.Sheets

	return &Service{
		Summaries: summaries,
		Banners:   banners,
		Feed:      NewFeedService(deps.Stats, summaries, banners, opts.DefaultPlayLimit, logger),
		Auth:      NewAuthService(deps.Identity, deps.Users, games, opts.SessionSecret, opts.SessionTTL, logger),
		Games:     games,
		Chat:      NewChatService(deps.Stats, deps.Answerer, summaries, logger),
	}
}
