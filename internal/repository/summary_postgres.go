package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playbook/internal/models"
)

const summaryColumns = `game_pk, play_id, language, title, setup, summary_of_play_events,
	outcome, overall_strategy_insights, image_prompt, created_at`

type SummaryPostgres struct {
	db *sql.DB
}

func NewSummaryPostgres(db *sql.DB) *SummaryPostgres {
	return &SummaryPostgres{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*models.PlaySummary, error) {
	var s models.PlaySummary
	err := row.Scan(&s.GamePK, &s.PlayID, &s.Language, &s.Title, &s.Setup, &s.SummaryOfPlayEvents,
		&s.Outcome, &s.OverallStrategyInsights, &s.ImagePrompt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SummaryPostgres) Get(ctx context.Context, key models.SummaryKey) (*models.PlaySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM play_summaries
		WHERE game_pk = $1 AND play_id = $2 AND language = $3`

	s, err := scanSummary(r.db.QueryRowContext(ctx, query, key.GamePK, key.PlayID, key.Language))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get play summary: %w", err)
	}
	return s, nil
}

func (r *SummaryPostgres) GetGame(ctx context.Context, gamePK int, lang models.Language) (map[string]*models.PlaySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM play_summaries
		WHERE game_pk = $1 AND language = $2`

	rows, err := r.db.QueryContext(ctx, query, gamePK, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to query game summaries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.PlaySummary)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play summary: %w", err)
		}
		out[s.PlayID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game summaries: %w", err)
	}
	return out, nil
}

func (r *SummaryPostgres) SaveVariants(ctx context.Context, variants []models.PlaySummary) (inserted int, err error) {
	if len(variants) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query := `INSERT INTO play_summaries (game_pk, play_id, language, title, setup, summary_of_play_events,
			outcome, overall_strategy_insights, image_prompt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_pk, play_id, language) DO NOTHING`

	for _, v := range variants {
		res, execErr := tx.ExecContext(ctx, query, v.GamePK, v.PlayID, v.Language, v.Title, v.Setup,
			v.SummaryOfPlayEvents, v.Outcome, v.OverallStrategyInsights, v.ImagePrompt)
		if execErr != nil {
			err = fmt.Errorf("failed to insert %s summary: %w", v.Language, execErr)
			return 0, err
		}
		if n, affErr := res.RowsAffected(); affErr == nil {
			inserted += int(n)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}
