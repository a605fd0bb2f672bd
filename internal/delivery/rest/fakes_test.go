package rest

import (
	"context"
	"io"
	"time"

	"playbook/internal/application"
	"playbook/internal/integration"
	"playbook/internal/mlbstats"
	"playbook/internal/models"
	"playbook/internal/repository"
	"playbook/pkg/config"
	"playbook/pkg/logger"
)

const testGamePK = 747962

type stubStats struct{}

func (stubStats) LiveFeed(_ context.Context, gamePK int) (*models.GameFeed, error) {
	if gamePK != testGamePK {
		return nil, mlbstats.ErrNotFound
	}
	return &models.GameFeed{
		GamePK: testGamePK,
		State:  models.GameStateLive,
		Away:   models.TeamRef{ID: 121, Name: "New York Mets"},
		Home:   models.TeamRef{ID: 138, Name: "St. Louis Cardinals"},
		Plays: []models.Play{
			{ID: "p1", Inning: 1, Event: "Single"},
			{ID: "p2", Inning: 1, Event: "Grounded Into DP"},
		},
		Lineups: models.Lineups{
			Away: []models.Player{{ID: 624413, FullName: "Pete Alonso"}},
			Home: []models.Player{{ID: 571448, FullName: "Nolan Arenado"}},
		},
	}, nil
}

func (stubStats) Schedule(_ context.Context, date time.Time) ([]models.ScheduledGame, error) {
	return []models.ScheduledGame{{GamePK: testGamePK, Date: date, AwayTeam: "New York Mets", HomeTeam: "St. Louis Cardinals"}}, nil
}

func (stubStats) SeasonSchedule(_ context.Context, year int) ([]models.ScheduledGame, error) {
	return []models.ScheduledGame{{GamePK: testGamePK, Date: time.Date(year, 4, 1, 0, 0, 0, 0, time.UTC), AwayTeam: "New York Mets", HomeTeam: "St. Louis Cardinals"}}, nil
}

func (stubStats) Teams(context.Context) ([]models.Team, error) {
	return []models.Team{{ID: 121, Name: "New York Mets"}, {ID: 138, Name: "St. Louis Cardinals"}}, nil
}

func (stubStats) Highlights(_ context.Context, gamePK int) ([]models.Highlight, error) {
	return []models.Highlight{{Headline: "Alonso homers", URL: "https://example.com/hr.mp4"}}, nil
}

type stubGenerator struct{ calls int }

func (g *stubGenerator) GeneratePlaySummary(_ context.Context, play models.Play) (*models.PlaySummary, error) {
	g.calls++
	return &models.PlaySummary{
		Title:                   "Play " + play.ID,
		Setup:                   "setup",
		SummaryOfPlayEvents:     "events",
		Outcome:                 "outcome",
		OverallStrategyInsights: "insights",
		ImagePrompt:             "image of " + play.ID,
	}, nil
}

type stubAnswerer struct{}

func (stubAnswerer) Ask(_ context.Context, _ models.Play, _ *models.PlaySummary, question string) (string, error) {
	return "answer to " + question, nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, text string, target models.Language) (string, error) {
	return "[" + target.Code() + "] " + text, nil
}

type stubImages struct{}

func (stubImages) GenerateBanner(_ context.Context, prompt string) ([]byte, error) {
	return []byte("png:" + prompt), nil
}

type stubThumbnailer struct{}

func (stubThumbnailer) Thumbnail(data []byte) ([]byte, error) {
	return append([]byte("thumb:"), data...), nil
}

type memObjects map[string][]byte

func (o memObjects) Exists(_ context.Context, name string) (bool, error) {
	_, ok := o[name]
	return ok, nil
}

func (o memObjects) Upload(_ context.Context, name string, data []byte) error {
	o[name] = data
	return nil
}

func (o memObjects) Download(_ context.Context, name string) ([]byte, error) {
	data, ok := o[name]
	if !ok {
		return nil, integration.ErrObjectNotFound
	}
	return data, nil
}

type memSummaries map[models.SummaryKey]models.PlaySummary

func (m memSummaries) Get(_ context.Context, key models.SummaryKey) (*models.PlaySummary, error) {
	s, ok := m[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m memSummaries) GetGame(_ context.Context, gamePK int, lang models.Language) (map[string]*models.PlaySummary, error) {
	out := make(map[string]*models.PlaySummary)
	for k, v := range m {
		if k.GamePK == gamePK && k.Language == lang {
			s := v
			out[k.PlayID] = &s
		}
	}
	return out, nil
}

func (m memSummaries) SaveVariants(_ context.Context, variants []models.PlaySummary) (int, error) {
	n := 0
	for _, v := range variants {
		key := models.SummaryKey{GamePK: v.GamePK, PlayID: v.PlayID, Language: v.Language}
		if _, ok := m[key]; !ok {
			m[key] = v
			n++
		}
	}
	return n, nil
}

type stubIdentity struct{}

func (stubIdentity) SignIn(_ context.Context, email, password string) (*models.Identity, error) {
	if email != "jdoe@example.com" {
		return nil, integration.ErrAccountNotFound
	}
	if password != "correct-horse" {
		return nil, integration.ErrWrongPassword
	}
	return &models.Identity{UserID: "jdoe", Email: email, DisplayName: "John Doe"}, nil
}

func (stubIdentity) LookupUser(_ context.Context, userID string) (*models.Identity, error) {
	if userID != "jdoe" {
		return nil, integration.ErrAccountNotFound
	}
	return &models.Identity{UserID: "jdoe", Email: "jdoe@example.com", DisplayName: "John Doe"}, nil
}

func (stubIdentity) CreateAccount(_ context.Context, userID string, signup models.Signup) (*models.Identity, error) {
	if userID == "jdoe" {
		return nil, integration.ErrAccountExists
	}
	return &models.Identity{UserID: userID, Email: signup.Email, DisplayName: signup.FullName}, nil
}

type memUsers map[string]models.User

func (m memUsers) Create(_ context.Context, user *models.User) error {
	if _, ok := m[user.ID]; ok {
		return repository.ErrUserExists
	}
	m[user.ID] = *user
	return nil
}

func (m memUsers) Get(_ context.Context, userID string) (*models.User, error) {
	u, ok := m[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) UpdateLanguage(_ context.Context, userID string, lang models.Language) error {
	u, ok := m[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PreferredLanguage = lang
	m[userID] = u
	return nil
}

type testEnv struct {
	app       *application.Service
	generator *stubGenerator
	objects   memObjects
	users     memUsers
	server    *Server
}

func newTestEnv() *testEnv {
	env := &testEnv{
		generator: &stubGenerator{},
		objects:   memObjects{},
		users:     memUsers{"jdoe": {ID: "jdoe", PreferredLanguage: models.English}},
	}
	log := logger.NewLogger(&logger.Config{Level: "error", Output: io.Discard})
	env.app = application.NewService(application.Deps{
		Stats:      stubStats{},
		Generator:  env.generator,
		Answerer:   stubAnswerer{},
		Images:     stubImages{},
		Thumbnails: stubThumbnailer{},
		Translator: stubTranslator{},
		Objects:    env.objects,
		Identity:   stubIdentity{},
		Summaries:  memSummaries{},
		Users:      env.users,
		Teams:      repository.NewTeamCache(),
	}, application.Options{
		BannerPrefix:  "play_banners",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}, log)

	env.server = NewServer(config.HTTPConfig{Addr: ":0", AllowedOrigins: []string{"http://localhost:3000"}},
		config.SessionConfig{CookieName: "playbook_session", TTL: time.Hour}, env.app, nil, log)
	return env
}
