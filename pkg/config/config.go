package config

import (
	"errors"
	"time"

	"playbook/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	HTTP     HTTPConfig        `envPrefix:"HTTP_"`
	Session  SessionConfig     `envPrefix:"SESSION_"`
	MLB      MLBConfig         `envPrefix:"MLB_"`
	Gemini   GeminiConfig      `envPrefix:"GEMINI_"`
	Vertex   VertexConfig      `envPrefix:"VERTEX_"`
	Storage  StorageConfig     `envPrefix:"STORAGE_"`
	Identity IdentityConfig    `envPrefix:"IDENTITY_"`
	Sheets   SheetsConfig      `envPrefix:"SHEETS_"`

	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	TranslationProject    string `env:"TRANSLATION_PROJECT" envDefault:""`

	DiscordToken   string `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string `env:"DISCORD_GUILD_ID" envDefault:""`
	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`

	DefaultPlayLimit int    `env:"DEFAULT_PLAY_LIMIT" envDefault:"2"`
	LogLevel         string `env:"LOGGER_LEVEL" envDefault:"debug"`
	LogFormat        string `env:"LOGGER_FORMAT" envDefault:"json"`
}

type HTTPConfig struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"5m"`
}

type SessionConfig struct {
	Secret       string        `env:"SECRET" envDefault:""`
	TTL          time.Duration `env:"TTL" envDefault:"24h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"playbook_session"`
	SecureCookie bool          `env:"SECURE_COOKIE" envDefault:"false"`
}

type MLBConfig struct {
	BaseURL       string        `env:"BASE_URL" envDefault:"https://statsapi.mlb.com/api"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryBackoff  time.Duration `env:"RETRY_BACKOFF" envDefault:"200ms"`
}

type GeminiConfig struct {
	APIKey       string `env:"KEY" envDefault:""`
	SummaryModel string `env:"SUMMARY_MODEL" envDefault:"gemini-2.0-flash"`
	ChatModel    string `env:"CHAT_MODEL" envDefault:"gemini-2.0-flash"`
}

type VertexConfig struct {
	Project    string `env:"PROJECT" envDefault:""`
	Location   string `env:"LOCATION" envDefault:"us-central1"`
	ImageModel string `env:"IMAGE_MODEL" envDefault:"imagen-3.0-generate-002"`
}

type StorageConfig struct {
	Bucket string `env:"BUCKET" envDefault:"mlb_storage_bucket"`
	Prefix string `env:"PREFIX" envDefault:"play_banners"`
}

// SheetsConfig enables mirroring season schedules into a Google Sheet.
type SheetsConfig struct {
	Enabled       bool   `env:"ENABLED" envDefault:"false"`
	SpreadsheetID string `env:"SPREADSHEET_ID" envDefault:""`
	OwnerEmail    string `env:"OWNER_EMAIL" envDefault:""`
}

type IdentityConfig struct {
	APIKey string `env:"API_KEY" envDefault:""`
}

var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return ErrMissingSessionSecret
	}
	return nil
}
