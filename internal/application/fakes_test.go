package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"playbook/internal/integration"
	"playbook/internal/mlbstats"
	"playbook/internal/models"
	"playbook/internal/repository"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeSummaryRepo struct {
	mu        sync.Mutex
	rows      map[models.SummaryKey]models.PlaySummary
	getErr    error
	saveErr   error
	saveCalls int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[models.SummaryKey]models.PlaySummary)}
}

func (r *fakeSummaryRepo) put(s models.PlaySummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[models.SummaryKey{GamePK: s.GamePK, PlayID: s.PlayID, Language: s.Language}] = s
}

func (r *fakeSummaryRepo) has(gamePK int, playID string, lang models.Language) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[models.SummaryKey{GamePK: gamePK, PlayID: playID, Language: lang}]
	return ok
}

func (r *fakeSummaryRepo) Get(_ context.Context, key models.SummaryKey) (*models.PlaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.rows[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSummaryRepo) GetGame(_ context.Context, gamePK int, lang models.Language) (map[string]*models.PlaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*models.PlaySummary)
	for k, v := range r.rows {
		if k.GamePK == gamePK && k.Language == lang {
			s := v
			out[k.PlayID] = &s
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) SaveVariants(_ context.Context, variants []models.PlaySummary) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	inserted := 0
	for _, v := range variants {
		key := models.SummaryKey{GamePK: v.GamePK, PlayID: v.PlayID, Language: v.Language}
		if _, ok := r.rows[key]; ok {
			continue
		}
		r.rows[key] = v
		inserted++
	}
	return inserted, nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	summary *models.PlaySummary
	err     error
	failFor map[string]bool
	playIDs []string
}

func (g *fakeGenerator) GeneratePlaySummary(_ context.Context, play models.Play) (*models.PlaySummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playIDs = append(g.playIDs, play.ID)
	if g.err != nil {
		return nil, g.err
	}
	if g.failFor[play.ID] {
		return nil, errors.New("model overloaded")
	}
	if g.summary != nil {
		s := *g.summary
		return &s, nil
	}
	return &models.PlaySummary{
		Title:                   "Play " + play.ID,
		Setup:                   "setup of " + play.ID,
		SummaryOfPlayEvents:     "events of " + play.ID,
		Outcome:                 "outcome of " + play.ID,
		OverallStrategyInsights: "insights of " + play.ID,
		ImagePrompt:             "image of " + play.ID,
	}, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.playIDs)
}

type fakeTranslator struct {
	mu      sync.Mutex
	failFor map[models.Language]bool
	calls   map[models.Language]int
}

func newFakeTranslator() *fakeTranslator {
	return &fakeTranslator{failFor: map[models.Language]bool{}, calls: map[models.Language]int{}}
}

func (t *fakeTranslator) Translate(_ context.Context, text string, target models.Language) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls[target]++
	if t.failFor[target] {
		return "", errors.New("translation quota exceeded")
	}
	return fmt.Sprintf("[%s] %s", target.Code(), text), nil
}

func (t *fakeTranslator) total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		n += c
	}
	return n
}

type fakeObjects struct {
	mu        sync.Mutex
	objects   map[string][]byte
	existsErr error
	uploadErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (o *fakeObjects) Exists(_ context.Context, name string) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.existsErr != nil {
		return false, o.existsErr
	}
	_, ok := o.objects[name]
	return ok, nil
}

func (o *fakeObjects) Upload(_ context.Context, name string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.uploadErr != nil {
		return o.uploadErr
	}
	o.objects[name] = data
	return nil
}

func (o *fakeObjects) Download(_ context.Context, name string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.objects[name]
	if !ok {
		return nil, integration.ErrObjectNotFound
	}
	return data, nil
}

func (o *fakeObjects) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.objects)
}

type fakeImages struct {
	mu      sync.Mutex
	err     error
	prompts []string
}

func (g *fakeImages) GenerateBanner(_ context.Context, prompt string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, g.err
	}
	return []byte("png:" + prompt), nil
}

func (g *fakeImages) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeThumbnailer struct{ err error }

func (t fakeThumbnailer) Thumbnail(data []byte) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return append([]byte("thumb:"), data...), nil
}

type fakeStats struct {
	feed       *models.GameFeed
	feedErr    error
	schedule   []models.ScheduledGame
	teams      []models.Team
	teamCalls  int
	highlights []models.Highlight
}

func (s *fakeStats) LiveFeed(_ context.Context, gamePK int) (*models.GameFeed, error) {
	if s.feedErr != nil {
		return nil, s.feedErr
	}
	if s.feed == nil || s.feed.GamePK != gamePK {
		return nil, mlbstats.ErrNotFound
	}
	return s.feed, nil
}

func (s *fakeStats) Schedule(_ context.Context, date time.Time) ([]models.ScheduledGame, error) {
	return s.schedule, nil
}

func (s *fakeStats) SeasonSchedule(_ context.Context, year int) ([]models.ScheduledGame, error) {
	return s.schedule, nil
}

func (s *fakeStats) Teams(context.Context) ([]models.Team, error) {
	s.teamCalls++
	return s.teams, nil
}

func (s *fakeStats) Highlights(_ context.Context, gamePK int) ([]models.Highlight, error) {
	return s.highlights, nil
}

type fakeAccount struct {
	email       string
	password    string
	displayName string
}

type fakeIdentity struct {
	accounts map[string]fakeAccount
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*models.Identity, error) {
	for id, acc := range f.accounts {
		if acc.email != email {
			continue
		}
		if acc.password != password {
			return nil, integration.ErrWrongPassword
		}
		return &models.Identity{UserID: id, Email: email, DisplayName: acc.displayName}, nil
	}
	return nil, integration.ErrAccountNotFound
}

func (f *fakeIdentity) LookupUser(_ context.Context, userID string) (*models.Identity, error) {
	acc, ok := f.accounts[userID]
	if !ok {
		return nil, integration.ErrAccountNotFound
	}
	return &models.Identity{UserID: userID, Email: acc.email, DisplayName: acc.displayName}, nil
}

func (f *fakeIdentity) CreateAccount(_ context.Context, userID string, signup models.Signup) (*models.Identity, error) {
	if _, ok := f.accounts[userID]; ok {
		return nil, integration.ErrAccountExists
	}
	f.accounts[userID] = fakeAccount{email: signup.Email, password: signup.Password, displayName: signup.FullName}
	return &models.Identity{UserID: userID, Email: signup.Email, DisplayName: signup.FullName}, nil
}

type fakeUsers struct {
	users map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]models.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; ok {
		return repository.ErrUserExists
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) Get(_ context.Context, userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) UpdateLanguage(_ context.Context, userID string, lang models.Language) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PreferredLanguage = lang
	f.users[userID] = u
	return nil
}

type fakeAnswerer struct {
	summary  *models.PlaySummary
	question string
	err      error
}

func (a *fakeAnswerer) Ask(_ context.Context, play models.Play, summary *models.PlaySummary, question string) (string, error) {
	a.summary = summary
	a.question = question
	if a.err != nil {
		return "", a.err
	}
	return "It was a slider low and away.", nil
}

func testPlays(ids ...string) []models.Play {
	plays := make([]models.Play, 0, len(ids))
	for i, id := range ids {
		plays = append(plays, models.Play{ID: id, Inning: i + 1, Event: "Single", Batter: "Batter " + id})
	}
	return plays
}
