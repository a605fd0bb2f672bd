package mlbstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Provider is the read-only view of the stats API the rest of the service uses.
type Provider interface {
	LiveFeed(ctx context.Context, gamePK int) (*models.GameFeed, error)
	Schedule(ctx context.Context, date time.Time) ([]models.ScheduledGame, error)
	SeasonSchedule(ctx context.Context, year int) ([]models.ScheduledGame, error)
	Teams(ctx context.Context) ([]models.Team, error)
	Highlights(ctx context.Context, gamePK int) ([]models.Highlight, error)
}

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL       string
	HTTPClient    *http.Client
	Timeout       time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the public MLB Stats API.
type Client struct {
	baseURL     string
	httpClient  httpDoer
	maxAttempts int
	backoffFn   func(attempt int) time.Duration
	logger      Logger
	metrics     *metrics.Recorder
}

func NewClient(cfg Config, logger Logger, recorder *metrics.Recorder) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  doer,
		maxAttempts: attempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		logger:  logger,
		metrics: recorder,
	}
}

// LiveFeed returns the full live feed of a game.
func (c *Client) LiveFeed(ctx context.Context, gamePK int) (*models.GameFeed, error) {
	var resp liveFeedResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/v1.1/game/%d/feed/live", gamePK), nil, &resp); err != nil {
		return nil, err
	}
	if resp.GamePK == 0 {
		resp.GamePK = gamePK
	}
	return mapLiveFeed(resp)
}

// Schedule returns the MLB games played on the given day.
func (c *Client) Schedule(ctx context.Context, date time.Time) ([]models.ScheduledGame, error) {
	day := date.Format(dateLayout)
	q := url.Values{}
	q.Set("sportId", mlbSportID)
	q.Set("date", day)

	var resp scheduleResponse
	if err := c.getJSON(ctx, "/v1/schedule", q, &resp); err != nil {
		return nil, err
	}
	return mapSchedule(resp, day), nil
}

// SeasonSchedule returns every game of a season.
func (c *Client) SeasonSchedule(ctx context.Context, year int) ([]models.ScheduledGame, error) {
	q := url.Values{}
	q.Set("sportId", mlbSportID)
	q.Set("season", strconv.Itoa(year))

	var resp scheduleResponse
	if err := c.getJSON(ctx, "/v1/schedule", q, &resp); err != nil {
		return nil, err
	}
	return mapSchedule(resp, ""), nil
}

// Teams returns the MLB clubs.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	q := url.Values{}
	q.Set("sportId", mlbSportID)

	var resp teamsResponse
	if err := c.getJSON(ctx, "/v1/teams", q, &resp); err != nil {
		return nil, err
	}
	return mapTeams(resp), nil
}

// Highlights returns the high-bitrate highlight videos of a game.
func (c *Client) Highlights(ctx context.Context, gamePK int) ([]models.Highlight, error) {
	var resp contentResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/game/%d/content", gamePK), nil, &resp); err != nil {
		return nil, err
	}
	return mapHighlights(resp), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		start := time.Now()
		err := c.do(ctx, path, query, out)
		c.metrics.RecordExternalCall(metrics.ServiceStats, metrics.Outcome(err, nil), time.Since(start))
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == c.maxAttempts || !retryable(err) {
			break
		}

		if c.logger != nil {
			c.logger.Warn("mlbstats %s retry %d/%d: %v", path, attempt, c.maxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoffFn(attempt)):
		}
	}

	return lastErr
}

func (c *Client) do(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mlbstats: decode %s: %w", path, err)
	}
	return nil
}
