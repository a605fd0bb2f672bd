package mlbstats

import "encoding/json"

type liveFeedResponse struct {
	GamePK   int      `json:"gamePk"`
	GameData gameData `json:"gameData"`
	LiveData liveData `json:"liveData"`
}

type gameData struct {
	Status struct {
		AbstractGameState string `json:"abstractGameState"`
	} `json:"status"`
	Teams struct {
		Away teamData `json:"away"`
		Home teamData `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name     string `json:"name"`
		Location struct {
			City        string `json:"city"`
			StateAbbrev string `json:"stateAbbrev"`
		} `json:"location"`
	} `json:"venue"`
}

type teamData struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
}

type liveData struct {
	Plays struct {
		AllPlays []json.RawMessage `json:"allPlays"`
	} `json:"plays"`
	Linescore struct {
		Innings []inningData `json:"innings"`
	} `json:"linescore"`
	Boxscore struct {
		Teams struct {
			Away boxscoreTeam `json:"away"`
			Home boxscoreTeam `json:"home"`
		} `json:"teams"`
	} `json:"boxscore"`
}

type inningData struct {
	Num  int       `json:"num"`
	Home lineStats `json:"home"`
	Away lineStats `json:"away"`
}

type lineStats struct {
	Runs   int `json:"runs"`
	Hits   int `json:"hits"`
	Errors int `json:"errors"`
}

type boxscoreTeam struct {
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	JerseyNumber string `json:"jerseyNumber"`
}

type playData struct {
	Result struct {
		Description string `json:"description"`
		Event       string `json:"event"`
		RBI         int    `json:"rbi"`
		AwayScore   int    `json:"awayScore"`
		HomeScore   int    `json:"homeScore"`
	} `json:"result"`
	About struct {
		Inning      int  `json:"inning"`
		IsTopInning bool `json:"isTopInning"`
	} `json:"about"`
	Count struct {
		Balls   int `json:"balls"`
		Strikes int `json:"strikes"`
		Outs    int `json:"outs"`
	} `json:"count"`
	Matchup struct {
		Batter    namedRef       `json:"batter"`
		Pitcher   namedRef       `json:"pitcher"`
		BatSide   describedValue `json:"batSide"`
		PitchHand describedValue `json:"pitchHand"`
	} `json:"matchup"`
	PlayEvents []playEvent `json:"playEvents"`
}

type namedRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type describedValue struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type playEvent struct {
	PlayID    string `json:"playId"`
	IsPitch   bool   `json:"isPitch"`
	PitchData *struct {
		StartSpeed float64 `json:"startSpeed"`
	} `json:"pitchData"`
	Details struct {
		Type *describedValue `json:"type"`
	} `json:"details"`
	HitData *struct {
		LaunchSpeed   float64 `json:"launchSpeed"`
		LaunchAngle   float64 `json:"launchAngle"`
		TotalDistance float64 `json:"totalDistance"`
	} `json:"hitData"`
}

type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePK       int    `json:"gamePk"`
	OfficialDate string `json:"officialDate"`
	Teams        struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type scheduleSide struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

type teamsResponse struct {
	Teams []teamData `json:"teams"`
}

type contentResponse struct {
	Highlights struct {
		Highlights struct {
			Items []struct {
				Type      string `json:"type"`
				Headline  string `json:"headline"`
				Playbacks []struct {
					Name string `json:"name"`
					URL  string `json:"url"`
				} `json:"playbacks"`
			} `json:"items"`
		} `json:"highlights"`
	} `json:"highlights"`
}
