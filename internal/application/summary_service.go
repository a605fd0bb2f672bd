package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"
	"playbook/internal/repository"
)

// SummaryService owns the text half of the artifact cache: it returns cached
// summaries and produces missing ones by generation and translation.
type SummaryService struct {
	repo       repository.Summary
	generator  SummaryGenerator
	translator Translator
	metrics    *metrics.Recorder
	logger     Logger
	now        func() time.Time
}

func NewSummaryService(repo repository.Summary, generator SummaryGenerator, translator Translator, recorder *metrics.Recorder, logger Logger) *SummaryService {
	return &SummaryService{
		repo:       repo,
		generator:  generator,
		translator: translator,
		metrics:    recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// EnsureSummary returns the summary of play in lang, producing and caching it
// when absent. If the play cannot be generated the error wraps ErrSummaryUnavailable
// and nothing is cached. When lang itself could not be produced the base
// variant is returned instead; its Language tells the caller.
func (s *SummaryService) EnsureSummary(ctx context.Context, lang models.Language, gamePK int, play models.Play) (*models.PlaySummary, error) {
	if !lang.Valid() {
		return nil, models.ErrUnsupportedLanguage
	}
	if play.ID == "" {
		return nil, ErrPlayNotFound
	}

	key := models.SummaryKey{GamePK: gamePK, PlayID: play.ID, Language: lang}
	if cached := s.lookup(ctx, key); cached != nil {
		s.metrics.RecordCacheLookup(metrics.ArtifactSummary, true)
		return cached, nil
	}
	s.metrics.RecordCacheLookup(metrics.ArtifactSummary, false)

	var produced []models.PlaySummary

	var base *models.PlaySummary
	if lang != models.BaseLanguage {
		base = s.lookup(ctx, models.SummaryKey{GamePK: gamePK, PlayID: play.ID, Language: models.BaseLanguage})
	}
	generated := base == nil
	if generated {
		var err error
		base, err = s.generate(ctx, gamePK, play)
		if err != nil {
			return nil, err
		}
		produced = append(produced, *base)
	}

	for _, target := range models.TranslatedLanguages() {
		if !generated && target != lang {
			if s.lookup(ctx, models.SummaryKey{GamePK: gamePK, PlayID: play.ID, Language: target}) != nil {
				continue
			}
		}

		variant, err := s.translate(ctx, base, target)
		if err != nil {
			s.logger.Warn("summary %d/%s: translation to %s failed: %v", gamePK, play.ID, target, err)
			continue
		}
		produced = append(produced, *variant)
	}

	s.persist(ctx, gamePK, play.ID, produced)

	for i := range produced {
		if produced[i].Language == lang {
			return &produced[i], nil
		}
	}
	return base, nil
}

// GameSummaries returns every cached summary of a game in lang, keyed by play id.
func (s *SummaryService) GameSummaries(ctx context.Context, gamePK int, lang models.Language) (map[string]*models.PlaySummary, error) {
	if !lang.Valid() {
		return nil, models.ErrUnsupportedLanguage
	}
	return s.repo.GetGame(ctx, gamePK, lang)
}

// Cached returns the stored variant without producing anything.
func (s *SummaryService) Cached(ctx context.Context, key models.SummaryKey) (*models.PlaySummary, bool) {
	summary := s.lookup(ctx, key)
	return summary, summary != nil
}

// lookup treats read failures as misses so a broken cache degrades to regeneration.
func (s *SummaryService) lookup(ctx context.Context, key models.SummaryKey) *models.PlaySummary {
	summary, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("summary %d/%s/%s: cache read failed: %v", key.GamePK, key.PlayID, key.Language, err)
		}
		return nil
	}
	return summary
}

func (s *SummaryService) generate(ctx context.Context, gamePK int, play models.Play) (*models.PlaySummary, error) {
	summary, err := s.generator.GeneratePlaySummary(ctx, play)
	if err == nil && summary == nil {
		err = models.ErrIncompleteSummary
	}
	if err == nil {
		err = summary.Validate()
	}
	if err != nil {
		s.logger.Error("summary %d/%s: generation failed: %v", gamePK, play.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	base := *summary
	base.GamePK = gamePK
	base.PlayID = play.ID
	base.Language = models.BaseLanguage
	base.CreatedAt = s.now()
	return &base, nil
}

func (s *SummaryService) translate(ctx context.Context, base *models.PlaySummary, target models.Language) (*models.PlaySummary, error) {
	variant := *base
	variant.Language = target
	variant.CreatedAt = s.now()

	for _, field := range variant.TranslatableFields() {
		if *field == "" {
			continue
		}
		translated, err := s.translator.Translate(ctx, *field, target)
		if err != nil {
			return nil, err
		}
		*field = translated
	}
	return &variant, nil
}

func (s *SummaryService) persist(ctx context.Context, gamePK int, playID string, variants []models.PlaySummary) {
	if len(variants) == 0 {
		return
	}
	inserted, err := s.repo.SaveVariants(ctx, variants)
	if err != nil {
		s.logger.Error("summary %d/%s: cache write failed: %v", gamePK, playID, err)
		return
	}
	s.logger.Debug("summary %d/%s: cached %d of %d variants", gamePK, playID, inserted, len(variants))
}
