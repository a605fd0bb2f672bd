package models

import (
	"encoding/json"
	"strconv"
)

// Play is one plate appearance from the live feed. Raw keeps the upstream
// JSON untouched because it is handed to the summary generator verbatim.
type Play struct {
	ID          string          `json:"play_id"`
	Description string          `json:"description"`
	Event       string          `json:"event"`
	Batter      string          `json:"batter"`
	BatSide     string          `json:"bat_side"`
	Pitcher     string          `json:"pitcher"`
	PitchHand   string          `json:"pitch_hand"`
	Inning      int             `json:"inning"`
	IsTopInning bool            `json:"is_top_inning"`
	Balls       int             `json:"balls"`
	Strikes     int             `json:"strikes"`
	Outs        int             `json:"outs"`
	RBI         int             `json:"rbi"`
	AwayScore   int             `json:"away_score"`
	HomeScore   int             `json:"home_score"`
	Pitch       *PitchInfo      `json:"pitch,omitempty"`
	Hit         *HitInfo        `json:"hit,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

type PitchInfo struct {
	StartSpeed float64 `json:"start_speed"`
	Type       string  `json:"type"`
}

type HitInfo struct {
	LaunchSpeed   float64 `json:"launch_speed"`
	LaunchAngle   float64 `json:"launch_angle"`
	TotalDistance float64 `json:"total_distance"`
}

// HalfInning renders "Top 3" / "Bottom 7".
func (p Play) HalfInning() string {
	half := "Bottom"
	if p.IsTopInning {
		half = "Top"
	}
	return half + " " + strconv.Itoa(p.Inning)
}
