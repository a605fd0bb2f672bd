package application

import (
	"context"
	"errors"
	"testing"

	"playbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryFixture struct {
	repo       *fakeSummaryRepo
	generator  *fakeGenerator
	translator *fakeTranslator
	service    *SummaryService
}

func newSummaryFixture() *summaryFixture {
	f := &summaryFixture{
		repo:       newFakeSummaryRepo(),
		generator:  &fakeGenerator{},
		translator: newFakeTranslator(),
	}
	f.service = NewSummaryService(f.repo, f.generator, f.translator, nil, nopLogger{})
	return f
}

func TestEnsureSummaryGeneratesAllLanguages(t *testing.T) {
	f := newSummaryFixture()
	play := models.Play{ID: "p1"}

	summary, err := f.service.EnsureSummary(context.Background(), models.English, 10, play)
	require.NoError(t, err)

	assert.Equal(t, models.English, summary.Language)
	assert.Equal(t, "Play p1", summary.Title)
	assert.Equal(t, 1, f.generator.calls())
	// Five fields for each of the three translated languages.
	assert.Equal(t, 15, f.translator.total())
	for _, lang := range models.TranslatedLanguages() {
		assert.Equal(t, 5, f.translator.calls[lang], lang)
	}
	assert.Equal(t, 1, f.repo.saveCalls)

	for _, lang := range models.SupportedLanguages() {
		assert.True(t, f.repo.has(10, "p1", lang), lang)
	}
}

func TestEnsureSummaryImagePromptSharedAcrossLanguages(t *testing.T) {
	f := newSummaryFixture()
	play := models.Play{ID: "p1"}

	_, err := f.service.EnsureSummary(context.Background(), models.Hindi, 10, play)
	require.NoError(t, err)

	for _, lang := range models.SupportedLanguages() {
		s, err := f.repo.Get(context.Background(), models.SummaryKey{GamePK: 10, PlayID: "p1", Language: lang})
		require.NoError(t, err)
		assert.Equal(t, "image of p1", s.ImagePrompt, lang)
		if lang != models.English {
			assert.Equal(t, "["+lang.Code()+"] setup of p1", s.Setup)
		}
	}
}

func TestEnsureSummaryCacheHitMakesNoExternalCalls(t *testing.T) {
	f := newSummaryFixture()
	f.repo.put(models.PlaySummary{GamePK: 10, PlayID: "p1", Language: models.Japanese, Title: "cached", ImagePrompt: "img"})

	summary, err := f.service.EnsureSummary(context.Background(), models.Japanese, 10, models.Play{ID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, "cached", summary.Title)
	assert.Zero(t, f.generator.calls())
	assert.Zero(t, f.translator.total())
	assert.Zero(t, f.repo.saveCalls)
}

func TestEnsureSummaryIsIdempotent(t *testing.T) {
	f := newSummaryFixture()
	play := models.Play{ID: "p1"}
	ctx := context.Background()

	first, err := f.service.EnsureSummary(ctx, models.Spanish, 10, play)
	require.NoError(t, err)
	translations := f.translator.total()

	second, err := f.service.EnsureSummary(ctx, models.Spanish, 10, play)
	require.NoError(t, err)

	assert.Equal(t, 1, f.generator.calls())
	assert.Equal(t, translations, f.translator.total())
	assert.Equal(t, 1, f.repo.saveCalls)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Setup, second.Setup)
	assert.Equal(t, first.ImagePrompt, second.ImagePrompt)
}

func TestEnsureSummaryTranslatesFromCachedBase(t *testing.T) {
	f := newSummaryFixture()
	playID := "c985139e-5b4c-4b5a-9f0a-3a2b1c0d9e8f"
	base := models.PlaySummary{
		GamePK:                  747962,
		PlayID:                  playID,
		Language:                models.English,
		Title:                   "Double Play Ends Rally",
		Setup:                   "Runners on first and second with one out.",
		SummaryOfPlayEvents:     "Conforto grounds a sinker to second.",
		Outcome:                 "Inning over.",
		OverallStrategyInsights: "Matz kept the ball down.",
		ImagePrompt:             "A second baseman turning a double play at Busch Stadium.",
	}
	f.repo.put(base)

	summary, err := f.service.EnsureSummary(context.Background(), models.Spanish, 747962, models.Play{ID: playID})
	require.NoError(t, err)

	assert.Equal(t, models.Spanish, summary.Language)
	assert.Equal(t, base.ImagePrompt, summary.ImagePrompt)
	assert.Equal(t, "[es] Double Play Ends Rally", summary.Title)
	assert.Equal(t, "[es] Runners on first and second with one out.", summary.Setup)
	assert.Equal(t, "[es] Inning over.", summary.Outcome)
	assert.Zero(t, f.generator.calls())
	assert.Equal(t, 5, f.translator.calls[models.Spanish])

	cachedBase, err := f.repo.Get(context.Background(), models.SummaryKey{GamePK: 747962, PlayID: playID, Language: models.English})
	require.NoError(t, err)
	assert.Equal(t, base.Title, cachedBase.Title)
}

func TestEnsureSummarySkipsLanguagesAlreadyCached(t *testing.T) {
	f := newSummaryFixture()
	f.repo.put(models.PlaySummary{GamePK: 1, PlayID: "p", Language: models.English, Setup: "s", SummaryOfPlayEvents: "e",
		Outcome: "o", OverallStrategyInsights: "i", ImagePrompt: "img"})
	f.repo.put(models.PlaySummary{GamePK: 1, PlayID: "p", Language: models.Hindi, Setup: "hi", ImagePrompt: "img"})

	_, err := f.service.EnsureSummary(context.Background(), models.Spanish, 1, models.Play{ID: "p"})
	require.NoError(t, err)

	assert.Zero(t, f.translator.calls[models.Hindi])
	assert.Positive(t, f.translator.calls[models.Japanese])
	assert.True(t, f.repo.has(1, "p", models.Japanese))
}

func TestEnsureSummaryPartialTranslationFailure(t *testing.T) {
	f := newSummaryFixture()
	f.translator.failFor[models.Japanese] = true
	play := models.Play{ID: "p1"}

	summary, err := f.service.EnsureSummary(context.Background(), models.English, 10, play)
	require.NoError(t, err)
	assert.Equal(t, models.English, summary.Language)

	assert.True(t, f.repo.has(10, "p1", models.English))
	assert.True(t, f.repo.has(10, "p1", models.Spanish))
	assert.True(t, f.repo.has(10, "p1", models.Hindi))
	assert.False(t, f.repo.has(10, "p1", models.Japanese))
}

func TestEnsureSummaryFallsBackToBaseWhenLanguageFails(t *testing.T) {
	f := newSummaryFixture()
	f.translator.failFor[models.Japanese] = true

	summary, err := f.service.EnsureSummary(context.Background(), models.Japanese, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, models.English, summary.Language)
	assert.Equal(t, "Play p1", summary.Title)

	// A later request retries the missing language from the cached base.
	f.translator.failFor[models.Japanese] = false
	summary, err = f.service.EnsureSummary(context.Background(), models.Japanese, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, models.Japanese, summary.Language)
	assert.Equal(t, 1, f.generator.calls())
}

func TestEnsureSummaryGenerationFailureCachesNothing(t *testing.T) {
	f := newSummaryFixture()
	f.generator.err = errors.New("deadline exceeded")

	_, err := f.service.EnsureSummary(context.Background(), models.English, 10, models.Play{ID: "p1"})
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.Zero(t, f.translator.total())
	assert.Zero(t, f.repo.saveCalls)

	f.generator.err = nil
	summary, err := f.service.EnsureSummary(context.Background(), models.English, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "Play p1", summary.Title)
}

func TestEnsureSummarySchemaMismatchIsGenerationFailure(t *testing.T) {
	f := newSummaryFixture()
	f.generator.summary = &models.PlaySummary{Title: "Only a title"}

	_, err := f.service.EnsureSummary(context.Background(), models.Spanish, 10, models.Play{ID: "p1"})
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.Zero(t, f.repo.saveCalls)
	assert.False(t, f.repo.has(10, "p1", models.English))
}

func TestEnsureSummaryWriteFailureStillReturns(t *testing.T) {
	f := newSummaryFixture()
	f.repo.saveErr = errors.New("connection refused")

	summary, err := f.service.EnsureSummary(context.Background(), models.Spanish, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, models.Spanish, summary.Language)

	f.repo.saveErr = nil
	_, err = f.service.EnsureSummary(context.Background(), models.Spanish, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.generator.calls())
	assert.True(t, f.repo.has(10, "p1", models.Spanish))
}

func TestEnsureSummaryCacheReadFailureRegenerates(t *testing.T) {
	f := newSummaryFixture()
	f.repo.getErr = errors.New("db down")

	summary, err := f.service.EnsureSummary(context.Background(), models.English, 10, models.Play{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "Play p1", summary.Title)
	assert.Equal(t, 1, f.generator.calls())
}

func TestEnsureSummaryRejectsUnsupportedLanguage(t *testing.T) {
	f := newSummaryFixture()

	_, err := f.service.EnsureSummary(context.Background(), models.Language("French"), 10, models.Play{ID: "p1"})
	assert.ErrorIs(t, err, models.ErrUnsupportedLanguage)
	assert.Zero(t, f.generator.calls())
}

func TestGameSummaries(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := f.service.EnsureSummary(ctx, models.English, 10, models.Play{ID: id})
		require.NoError(t, err)
	}

	doc, err := f.service.GameSummaries(ctx, 10, models.Spanish)
	require.NoError(t, err)
	assert.Len(t, doc, 2)
	assert.Equal(t, "[es] Play b", doc["b"].Title)
}
