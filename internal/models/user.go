package models

import "time"

type User struct {
	ID                string    `json:"user_id" db:"user_id"`
	FavoriteTeamID    int       `json:"favorite_team_id" db:"favorite_team_id"`
	FollowedTeamIDs   []int     `json:"followed_team_ids" db:"followed_team_ids"`
	FollowedPlayerIDs []int     `json:"followed_player_ids" db:"followed_player_ids"`
	PreferredLanguage Language  `json:"preferred_language" db:"preferred_language"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Viewer is the per-session context a request runs with: who is looking
// and in which language.
type Viewer struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Language    Language `json:"language"`
}

// Identity is an account as known to the identity provider.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

type Signup struct {
	FullName      string   `json:"full_name"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	PhoneNumber   string   `json:"phone_number"`
	Password      string   `json:"password"`
	FavoriteTeam  string   `json:"favorite_team"`
	TeamsToFollow []string `json:"teams_to_follow"`
	AcceptTerms   bool     `json:"accept_terms"`
}
