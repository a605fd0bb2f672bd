package repository

import (
	"context"
	"database/sql"
	"errors"

	"playbook/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Summary is the text half of the artifact cache. Rows are write-once.
type Summary interface {
	Get(ctx context.Context, key models.SummaryKey) (*models.PlaySummary, error)
	// GetGame returns every cached summary of a game in one language, keyed by play id.
	GetGame(ctx context.Context, gamePK int, lang models.Language) (map[string]*models.PlaySummary, error)
	// SaveVariants stores all variants atomically, skipping keys that already exist.
	// It returns how many rows were actually inserted.
	SaveVariants(ctx context.Context, variants []models.PlaySummary) (int, error)
}

type User interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID string) (*models.User, error)
	UpdateLanguage(ctx context.Context, userID string, lang models.Language) error
}

type Repository struct {
	Summary
	User
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Summary: NewSummaryPostgres(db),
		User:    NewUserPostgres(db),
		db:      db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
