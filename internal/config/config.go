// Package config reads teachdesk settings from the environment, after an
// optional .env file has been loaded into it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DriveConfig holds the Google Drive credentials. Both the API key and the
// OAuth client id must be present for live access; otherwise Drive runs on
// demo data.
type DriveConfig struct {
	APIKey       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TimeoutMs    int
}

// Live reports whether enough credentials are set to talk to Drive.
func (d DriveConfig) Live() bool {
	return d.APIKey != "" && d.ClientID != ""
}

// Timeout returns the per-request timeout.
func (d DriveConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	File   string // empty means stderr
}

// Config holds all configuration for one teachdesk session.
type Config struct {
	Drive       DriveConfig
	Log         LogConfig
	Timezone    string // IANA name, empty means local
	HistoryPath string
}

// DefaultConfig returns a Config with sensible defaults.
// Drive is in demo mode by default.
func DefaultConfig() Config {
	return Config{
		Drive: DriveConfig{
			RedirectURL: "urn:ietf:wg:oauth:2.0:oob",
			TimeoutMs:   15000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		HistoryPath: defaultHistoryPath(),
	}
}

// LoadConfig loads the given .env files (".env" when none are named) and
// then reads configuration from environment variables, falling back to
// defaults for any unset values. Missing .env files are not an error.
// Variables already present in the environment win over .env entries.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := DefaultConfig()

	if v := os.Getenv("TEACHDESK_DRIVE_API_KEY"); v != "" {
		cfg.Drive.APIKey = v
	}
	if v := os.Getenv("TEACHDESK_DRIVE_CLIENT_ID"); v != "" {
		cfg.Drive.ClientID = v
	}
	if v := os.Getenv("TEACHDESK_DRIVE_CLIENT_SECRET"); v != "" {
		cfg.Drive.ClientSecret = v
	}
	if v := os.Getenv("TEACHDESK_DRIVE_REDIRECT_URL"); v != "" {
		cfg.Drive.RedirectURL = v
	}
	if v := os.Getenv("TEACHDESK_DRIVE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Drive.TimeoutMs = n
		}
	}
	if v := os.Getenv("TEACHDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TEACHDESK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TEACHDESK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TEACHDESK_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("TEACHDESK_HISTORY"); v != "" {
		cfg.HistoryPath = v
	}

	return cfg, nil
}

// Location resolves Timezone, defaulting to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TEACHDESK_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".teachdesk", "shell_history")
}
