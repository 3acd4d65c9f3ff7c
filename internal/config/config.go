// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	ListenAddr string
	DBPath     string
	LogLevel   slog.Level
}

// Load reads configuration from environment variables and returns a validated Config.
// Variables already set in the process environment take precedence over the
// optional .env file in the working directory.
// Required: SESSIONPANEL_BASE_URL (absolute http or https URL).
// Optional variables with defaults: SESSIONPANEL_TIMEOUT (10s),
// SESSIONPANEL_LISTEN_ADDR (127.0.0.1:8080), SESSIONPANEL_DB_PATH (sessionpanel.db),
// SESSIONPANEL_LOG_LEVEL (info).
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	baseURL, err := parseBaseURL(os.Getenv("SESSIONPANEL_BASE_URL"))
	if err != nil {
		return nil, err
	}

	timeout := 10 * time.Second
	if v, ok := os.LookupEnv("SESSIONPANEL_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSIONPANEL_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SESSIONPANEL_TIMEOUT must be positive, got %s", parsed)
		}
		timeout = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SESSIONPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "sessionpanel.db"
	if v, ok := os.LookupEnv("SESSIONPANEL_DB_PATH"); ok {
		dbPath = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("SESSIONPANEL_LOG_LEVEL"); ok {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("SESSIONPANEL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		BaseURL:    baseURL,
		Timeout:    timeout,
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		LogLevel:   logLevel,
	}, nil
}

func parseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("SESSIONPANEL_BASE_URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("SESSIONPANEL_BASE_URL is not a valid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("SESSIONPANEL_BASE_URL must be an absolute http(s) URL, got %q", raw)
	}

	return strings.TrimRight(raw, "/"), nil
}
