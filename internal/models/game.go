package models

import "time"

const (
	GameStateLive    = "Live"
	GameStatePreview = "Preview"
	GameStateFinal   = "Final"
)

// GameFeed is the subset of the live feed the dashboard works with.
type GameFeed struct {
	GamePK    int       `json:"game_pk"`
	State     string    `json:"state"`
	Away      TeamRef   `json:"away"`
	Home      TeamRef   `json:"home"`
	Venue     Venue     `json:"venue"`
	Scorecard Scorecard `json:"scorecard"`
	Plays     []Play    `json:"-"`
	Lineups   Lineups   `json:"-"`
}

func (g *GameFeed) IsLive() bool {
	return g.State == GameStateLive
}

// LatestPlays returns up to limit plays, most recent first. Plays without
// an identifier cannot be cached and are skipped.
func (g *GameFeed) LatestPlays(limit int) []Play {
	out := make([]Play, 0, limit)
	for i := len(g.Plays) - 1; i >= 0 && len(out) < limit; i-- {
		if g.Plays[i].ID == "" {
			continue
		}
		out = append(out, g.Plays[i])
	}
	return out
}

func (g *GameFeed) FindPlay(playID string) (Play, bool) {
	for _, p := range g.Plays {
		if p.ID == playID {
			return p, true
		}
	}
	return Play{}, false
}

type TeamRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	LogoURL  string `json:"logo_url"`
}

type Venue struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	StateAbbrev string `json:"state_abbrev"`
}

type InningLine struct {
	Inning int `json:"inning"`
	Runs   int `json:"runs"`
	Hits   int `json:"hits"`
	Errors int `json:"errors"`
}

// Scorecard is the per-inning line score, away team first.
type Scorecard struct {
	AwayTeam string       `json:"away_team"`
	HomeTeam string       `json:"home_team"`
	Away     []InningLine `json:"away"`
	Home     []InningLine `json:"home"`
}

type Player struct {
	ID           int    `json:"player_id"`
	FullName     string `json:"full_name"`
	JerseyNumber string `json:"jersey_number"`
	HeadshotURL  string `json:"headshot_url"`
}

type Lineups struct {
	Away []Player `json:"away"`
	Home []Player `json:"home"`
}

// ScheduledGame is one entry of a daily or season schedule.
type ScheduledGame struct {
	GamePK   int       `json:"game_pk"`
	Date     time.Time `json:"date"`
	AwayTeam string    `json:"away_team"`
	HomeTeam string    `json:"home_team"`
	Venue    string    `json:"venue"`
}

// Label is how a match is presented in the game picker.
func (g ScheduledGame) Label() string {
	return g.AwayTeam + " vs " + g.HomeTeam
}

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Highlight struct {
	Headline string `json:"headline"`
	URL      string `json:"url"`
}
