// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	AllowedOrigins   []string
	CountdownSeconds int
	StatsFile        string
	DatabaseURL      string
	Dev              bool
}

func Default() Config {
	return Config{
		Addr:             ":8080",
		AllowedOrigins:   nil, // same-origin only by default
		CountdownSeconds: 30,
		StatsFile:        "stats.json",
	}
}

// LoadDotEnv loads a .env file if present. Existing environment variables
// are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("DRAFT_ADDR"); raw != "" {
		cfg.Addr = raw
	}
	if raw := os.Getenv("DRAFT_ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = splitAndTrim(raw)
	}
	if raw := os.Getenv("DRAFT_COUNTDOWN_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.CountdownSeconds = value
		}
	}
	if raw := os.Getenv("DRAFT_STATS_FILE"); raw != "" {
		cfg.StatsFile = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("DRAFT_DEV"); raw == "1" || strings.EqualFold(raw, "true") {
		cfg.Dev = true
	}
	return cfg
}

func splitAndTrim(input string) []string {
	raw := strings.Split(input, ",")
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
