package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playbook/internal/models"

	"github.com/lib/pq"
)

var ErrUserExists = errors.New("user already exists")

const uniqueViolation = "23505"

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (user_id, favorite_team_id, followed_team_ids, followed_player_ids, preferred_language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	lang := user.PreferredLanguage
	if lang == "" {
		lang = models.BaseLanguage
	}

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		nullableTeam(user.FavoriteTeamID),
		toInt64Array(user.FollowedTeamIDs),
		toInt64Array(user.FollowedPlayerIDs),
		lang,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.PreferredLanguage = lang
	return nil
}

func (r *UserPostgres) Get(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT user_id, favorite_team_id, followed_team_ids, followed_player_ids, preferred_language, created_at
		FROM users WHERE user_id = $1`

	var (
		u         models.User
		favorite  sql.NullInt64
		teams     pq.Int64Array
		players   pq.Int64Array
		preferred string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&u.ID, &favorite, &teams, &players, &preferred, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.FavoriteTeamID = int(favorite.Int64)
	u.FollowedTeamIDs = fromInt64Array(teams)
	u.FollowedPlayerIDs = fromInt64Array(players)
	u.PreferredLanguage = models.Language(preferred)
	return &u, nil
}

func (r *UserPostgres) UpdateLanguage(ctx context.Context, userID string, lang models.Language) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET preferred_language = $1 WHERE user_id = $2", lang, userID)
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableTeam(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id != 0}
}

func toInt64Array(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func fromInt64Array(ids pq.Int64Array) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
