package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the bot process configuration.
type Config struct {
	// GatewayURL is the websocket endpoint of the chat gateway bridge.
	GatewayURL string `env:"QUESTLINE_GATEWAY_URL" envDefault:"ws://localhost:8765/events"`

	// UserDBPath is the bbolt database holding per-user RPG records.
	UserDBPath string `env:"QUESTLINE_USER_DB" envDefault:"questline.db"`

	// LeagueDBPath is the SQLite cache for football league data.
	LeagueDBPath string `env:"QUESTLINE_LEAGUE_DB" envDefault:"league.db"`

	// DownloadDir receives temporary media downloads.
	DownloadDir string `env:"QUESTLINE_DOWNLOAD_DIR" envDefault:"/tmp/questline"`

	// SessionTTLMinutes controls idle session eviction.
	SessionTTLMinutes int `env:"QUESTLINE_SESSION_TTL_MINUTES" envDefault:"120"`

	// LogLevel sets the zap log level (debug, info, warn, error).
	LogLevel string `env:"QUESTLINE_LOG_LEVEL" envDefault:"info"`

	// LogEncoding selects json or console output.
	LogEncoding string `env:"QUESTLINE_LOG_ENCODING" envDefault:"json"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the bot configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
