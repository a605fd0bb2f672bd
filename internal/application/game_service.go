package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"playbook/internal/mlbstats"
	"playbook/internal/models"
	"playbook/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	SideAway = "away"
	SideHome = "home"
)

// GameService serves the read-only game views: schedules, lineups, highlights and teams.
type GameService struct {
	stats     StatsProvider
	teams     *repository.TeamCache
	publisher SheetPublisher
	logger    Logger
}

func NewGameService(stats StatsProvider, teams *repository.TeamCache, logger Logger) *GameService {
	if teams == nil {
		teams = repository.NewTeamCache()
	}
	return &GameService{stats: stats, teams: teams, logger: logger}
}

func (s *GameService) Schedule(ctx context.Context, date time.Time) ([]models.ScheduledGame, error) {
	games, err := s.stats.Schedule(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", date.Format(scheduleDateFormat), err)
	}
	return games, nil
}

func (s *GameService) SeasonSchedule(ctx context.Context, year int) ([]models.ScheduledGame, error) {
	games, err := s.stats.SeasonSchedule(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", year, err)
	}
	return games, nil
}

// SeasonWorkbook renders the season schedule as an Excel workbook.
func (s *GameService) SeasonWorkbook(ctx context.Context, year int) ([]byte, error) {
	games, err := s.SeasonSchedule(ctx, year)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(scheduleSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(scheduleSheetName, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{scheduleHeaderColor}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	f.SetCellStyle(scheduleSheetName, "A1", "E1", headerStyle)

	for i, row := range scheduleRows(games) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(scheduleSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	f.SetColWidth(scheduleSheetName, "A", "B", 12)
	f.SetColWidth(scheduleSheetName, "C", "D", 24)
	f.SetColWidth(scheduleSheetName, "E", "E", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PublishSeason mirrors the season schedule into the shared Google Sheet.
func (s *GameService) PublishSeason(ctx context.Context, year int) (string, error) {
	if s.publisher == nil {
		return "", ErrPublishingDisabled
	}
	games, err := s.SeasonSchedule(ctx, year)
	if err != nil {
		return "", err
	}

	header := make([]interface{}, len(scheduleHeaders))
	for i, h := range scheduleHeaders {
		header[i] = h
	}
	rows := append([][]interface{}{header}, scheduleRows(games)...)

	url, err := s.publisher.Publish(ctx, fmt.Sprintf("MLB %d Schedule", year), rows)
	if err != nil {
		return "", fmt.Errorf("publish season %d: %w", year, err)
	}
	s.logger.Info("published %d games of season %d to %s", len(games), year, url)
	return url, nil
}

func scheduleRows(games []models.ScheduledGame) [][]interface{} {
	rows := make([][]interface{}, 0, len(games))
	for _, g := range games {
		rows = append(rows, []interface{}{g.Date.Format(scheduleDateFormat), g.GamePK, g.AwayTeam, g.HomeTeam, g.Venue})
	}
	return rows
}

// Lineups returns the players of one side of a game.
func (s *GameService) Lineups(ctx context.Context, gamePK int, side string) ([]models.Player, error) {
	feed, err := s.stats.LiveFeed(ctx, gamePK)
	if errors.Is(err, mlbstats.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("live feed %d: %w", gamePK, err)
	}

	switch strings.ToLower(side) {
	case SideAway:
		return feed.Lineups.Away, nil
	case SideHome, "":
		return feed.Lineups.Home, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
}

func (s *GameService) Highlights(ctx context.Context, gamePK int) ([]models.Highlight, error) {
	highlights, err := s.stats.Highlights(ctx, gamePK)
	if errors.Is(err, mlbstats.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("highlights %d: %w", gamePK, err)
	}
	return highlights, nil
}

// Teams returns the MLB clubs, loading them once into the team cache.
func (s *GameService) Teams(ctx context.Context) ([]models.Team, error) {
	if s.teams.Size() > 0 {
		return s.teams.All(), nil
	}

	teams, err := s.stats.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("teams: %w", err)
	}
	s.teams.LoadAll(teams)
	s.logger.Debug("team cache warmed with %d teams", s.teams.Size())
	return s.teams.All(), nil
}

// ResolveTeam finds a team by name.
func (s *GameService) ResolveTeam(ctx context.Context, name string) (models.Team, bool) {
	if _, err := s.Teams(ctx); err != nil {
		s.logger.Warn("resolve team %q: %v", name, err)
		return models.Team{}, false
	}
	return s.teams.Get(name)
}
