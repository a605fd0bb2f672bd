package mlbstats

import "time"

const (
	defaultBaseURL       = "https://statsapi.mlb.com/api"
	defaultHTTPTimeout   = 10 * time.Second
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	mlbSportID           = "1"
	dateLayout           = "2006-01-02"
	highlightPlayback    = "highBit"
	maxErrorBody         = 512

	teamLogoURL = "https://www.mlbstatic.com/team-logos/%d.svg"
	headshotURL = "https://securea.mlb.com/mlb/images/players/head_shot/%d.jpg"
)
