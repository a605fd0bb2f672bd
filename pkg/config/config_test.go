package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "https://statsapi.mlb.com/api", cfg.MLB.BaseURL)
	assert.Equal(t, 3, cfg.MLB.RetryAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "play_banners", cfg.Storage.Prefix)
	assert.Equal(t, 2, cfg.DefaultPlayLimit)
}

func TestReadEnvConfigPrefixes(t *testing.T) {
	t.Setenv("REPO_DB_HOST", "db.internal")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("GEMINI_KEY", "secret")
	t.Setenv("STORAGE_BUCKET", "banners")
	t.Setenv("MLB_RETRY_BACKOFF", "1s")
	t.Setenv("SHEETS_ENABLED", "true")
	t.Setenv("SHEETS_OWNER_EMAIL", "ops@example.com")

	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "db.internal", cfg.Repo.Host)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "banners", cfg.Storage.Bucket)
	assert.Equal(t, time.Second, cfg.MLB.RetryBackoff)
	assert.True(t, cfg.Sheets.Enabled)
	assert.Equal(t, "ops@example.com", cfg.Sheets.OwnerEmail)
}

func TestValidateRequiresSessionSecret(t *testing.T) {
	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSessionSecret)

	t.Setenv("SESSION_SECRET", "s3cret")
	require.NoError(t, ReadEnvConfig(&cfg))
	assert.NoError(t, cfg.Validate())
}
