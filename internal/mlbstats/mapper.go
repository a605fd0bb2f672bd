package mlbstats

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"playbook/internal/models"
)

func mapLiveFeed(resp liveFeedResponse) (*models.GameFeed, error) {
	feed := &models.GameFeed{
		GamePK: resp.GamePK,
		State:  resp.GameData.Status.AbstractGameState,
		Away:   mapTeamRef(resp.GameData.Teams.Away),
		Home:   mapTeamRef(resp.GameData.Teams.Home),
		Venue: models.Venue{
			Name:        resp.GameData.Venue.Name,
			City:        resp.GameData.Venue.Location.City,
			StateAbbrev: resp.GameData.Venue.Location.StateAbbrev,
		},
		Scorecard: mapScorecard(resp),
		Lineups: models.Lineups{
			Away: mapPlayers(resp.LiveData.Boxscore.Teams.Away.Players),
			Home: mapPlayers(resp.LiveData.Boxscore.Teams.Home.Players),
		},
	}

	feed.Plays = make([]models.Play, 0, len(resp.LiveData.Plays.AllPlays))
	for i, raw := range resp.LiveData.Plays.AllPlays {
		play, err := mapPlay(raw)
		if err != nil {
			return nil, fmt.Errorf("play %d: %w", i, err)
		}
		feed.Plays = append(feed.Plays, play)
	}
	return feed, nil
}

func mapTeamRef(t teamData) models.TeamRef {
	return models.TeamRef{
		ID:       t.ID,
		Name:     t.Name,
		TeamName: t.TeamName,
		LogoURL:  fmt.Sprintf(teamLogoURL, t.ID),
	}
}

func mapScorecard(resp liveFeedResponse) models.Scorecard {
	card := models.Scorecard{
		AwayTeam: resp.GameData.Teams.Away.TeamName,
		HomeTeam: resp.GameData.Teams.Home.TeamName,
	}
	for _, inn := range resp.LiveData.Linescore.Innings {
		card.Away = append(card.Away, models.InningLine{
			Inning: inn.Num, Runs: inn.Away.Runs, Hits: inn.Away.Hits, Errors: inn.Away.Errors,
		})
		card.Home = append(card.Home, models.InningLine{
			Inning: inn.Num, Runs: inn.Home.Runs, Hits: inn.Home.Hits, Errors: inn.Home.Errors,
		})
	}
	return card
}

func mapPlayers(in map[string]boxscorePlayer) []models.Player {
	out := make([]models.Player, 0, len(in))
	for _, p := range in {
		out = append(out, models.Player{
			ID:           p.Person.ID,
			FullName:     p.Person.FullName,
			JerseyNumber: p.JerseyNumber,
			HeadshotURL:  fmt.Sprintf(headshotURL, p.Person.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})
	return out
}

func mapPlay(raw json.RawMessage) (models.Play, error) {
	var p playData
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Play{}, err
	}

	play := models.Play{
		Description: p.Result.Description,
		Event:       p.Result.Event,
		Batter:      p.Matchup.Batter.FullName,
		BatSide:     p.Matchup.BatSide.Description,
		Pitcher:     p.Matchup.Pitcher.FullName,
		PitchHand:   p.Matchup.PitchHand.Description,
		Inning:      p.About.Inning,
		IsTopInning: p.About.IsTopInning,
		Balls:       p.Count.Balls,
		Strikes:     p.Count.Strikes,
		Outs:        p.Count.Outs,
		RBI:         p.Result.RBI,
		AwayScore:   p.Result.AwayScore,
		HomeScore:   p.Result.HomeScore,
		Raw:         raw,
	}

	if n := len(p.PlayEvents); n > 0 {
		play.ID = p.PlayEvents[n-1].PlayID
	}

	for _, ev := range p.PlayEvents {
		if !ev.IsPitch {
			continue
		}
		if play.Pitch == nil && ev.PitchData != nil {
			play.Pitch = &models.PitchInfo{StartSpeed: ev.PitchData.StartSpeed}
			if ev.Details.Type != nil {
				play.Pitch.Type = ev.Details.Type.Description
			}
		}
		if ev.HitData != nil {
			play.Hit = &models.HitInfo{
				LaunchSpeed:   ev.HitData.LaunchSpeed,
				LaunchAngle:   ev.HitData.LaunchAngle,
				TotalDistance: ev.HitData.TotalDistance,
			}
		}
	}
	return play, nil
}

func mapSchedule(resp scheduleResponse, onlyDate string) []models.ScheduledGame {
	out := make([]models.ScheduledGame, 0)
	for _, d := range resp.Dates {
		if onlyDate != "" && d.Date != onlyDate {
			continue
		}
		for _, g := range d.Games {
			official := g.OfficialDate
			if official == "" {
				official = d.Date
			}
			date, _ := time.Parse(dateLayout, official)
			out = append(out, models.ScheduledGame{
				GamePK:   g.GamePK,
				Date:     date,
				AwayTeam: g.Teams.Away.Team.Name,
				HomeTeam: g.Teams.Home.Team.Name,
				Venue:    g.Venue.Name,
			})
		}
	}
	return out
}

func mapTeams(resp teamsResponse) []models.Team {
	out := make([]models.Team, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		if t.Name == "" || t.ID == 0 {
			continue
		}
		out = append(out, models.Team{ID: t.ID, Name: t.Name})
	}
	return out
}

func mapHighlights(resp contentResponse) []models.Highlight {
	out := make([]models.Highlight, 0)
	for _, item := range resp.Highlights.Highlights.Items {
		if item.Type != "video" {
			continue
		}
		for _, pb := range item.Playbacks {
			if pb.Name == highlightPlayback {
				out = append(out, models.Highlight{Headline: item.Headline, URL: pb.URL})
			}
		}
	}
	return out
}
