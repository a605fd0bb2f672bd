package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"playbook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var summaryRowColumns = []string{"game_pk", "play_id", "language", "title", "setup", "summary_of_play_events",
	"outcome", "overall_strategy_insights", "image_prompt", "created_at"}

func TestSummaryGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSummaryPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM play_summaries").
		WithArgs(747962, "c985139e", "Spanish").
		WillReturnRows(sqlmock.NewRows(summaryRowColumns).
			AddRow(747962, "c985139e", "Spanish", "Jonrón", "s", "e", "o", "i", "prompt", now))

	s, err := repo.Get(context.Background(), models.SummaryKey{GamePK: 747962, PlayID: "c985139e", Language: models.Spanish})
	require.NoError(t, err)
	assert.Equal(t, models.Spanish, s.Language)
	assert.Equal(t, "Jonrón", s.Title)
	assert.Equal(t, "prompt", s.ImagePrompt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryGetMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSummaryPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM play_summaries").
		WillReturnRows(sqlmock.NewRows(summaryRowColumns))

	_, err := repo.Get(context.Background(), models.SummaryKey{GamePK: 1, PlayID: "x", Language: models.English})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummaryGetGame(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSummaryPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM play_summaries WHERE game_pk = \\$1 AND language = \\$2").
		WithArgs(5, "English").
		WillReturnRows(sqlmock.NewRows(summaryRowColumns).
			AddRow(5, "a", "English", "", "s", "e", "o", "i", "p", now).
			AddRow(5, "b", "English", "", "s", "e", "o", "i", "p", now))

	doc, err := repo.GetGame(context.Background(), 5, models.English)
	require.NoError(t, err)
	assert.Len(t, doc, 2)
	assert.Equal(t, "b", doc["b"].PlayID)
}

func variants() []models.PlaySummary {
	base := models.PlaySummary{GamePK: 5, PlayID: "a", Language: models.English, Setup: "s",
		SummaryOfPlayEvents: "e", Outcome: "o", OverallStrategyInsights: "i", ImagePrompt: "p"}
	es := base
	es.Language = models.Spanish
	return []models.PlaySummary{base, es}
}

func TestSaveVariantsIsAtomic(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSummaryPostgres(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO play_summaries (.+) ON CONFLICT \\(game_pk, play_id, language\\) DO NOTHING").
		WithArgs(5, "a", "English", "", "s", "e", "o", "i", "p").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO play_summaries").
		WithArgs(5, "a", "Spanish", "", "s", "e", "o", "i", "p").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.SaveVariants(context.Background(), variants())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVariantsRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSummaryPostgres(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO play_summaries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO play_summaries").WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := repo.SaveVariants(context.Background(), variants())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVariantsEmpty(t *testing.T) {
	db, mock := newMock(t)

	n, err := NewSummaryPostgres(db).SaveVariants(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jdoe", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "English").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	user := &models.User{ID: "jdoe", FavoriteTeamID: 121, FollowedTeamIDs: []int{121, 138}}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, models.English, user.PreferredLanguage)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), &models.User{ID: "jdoe"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id = \\$1").
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "favorite_team_id", "followed_team_ids",
			"followed_player_ids", "preferred_language", "created_at"}).
			AddRow("jdoe", 121, "{121,138}", "{}", "Japanese", now))

	user, err := repo.Get(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 121, user.FavoriteTeamID)
	assert.Equal(t, []int{121, 138}, user.FollowedTeamIDs)
	assert.Empty(t, user.FollowedPlayerIDs)
	assert.Equal(t, models.Japanese, user.PreferredLanguage)
}

func TestUserUpdateLanguage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectExec("UPDATE users SET preferred_language").
		WithArgs("Hindi", "jdoe").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET preferred_language").
		WithArgs("Hindi", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateLanguage(context.Background(), "jdoe", models.Hindi))
	assert.ErrorIs(t, repo.UpdateLanguage(context.Background(), "ghost", models.Hindi), ErrNotFound)
}

func TestTeamCache(t *testing.T) {
	cache := NewTeamCache()
	cache.LoadAll([]models.Team{{ID: 121, Name: "New York Mets"}, {ID: 138, Name: "St. Louis Cardinals"}})

	team, ok := cache.Get("  new york   METS ")
	require.True(t, ok)
	assert.Equal(t, 121, team.ID)

	_, ok = cache.Get("Brooklyn Dodgers")
	assert.False(t, ok)

	all := cache.All()
	require.Len(t, all, 2)
	assert.Equal(t, "New York Mets", all[0].Name)
	assert.Equal(t, 2, cache.Size())
}
