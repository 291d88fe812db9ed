package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// League
	League LeagueConfig

	// Paths
	Paths PathConfig

	// StandingsURL is an optional almanac HTML page to fall back to
	// when the standings CSV extract is absent
	StandingsURL string

	// Database (optional; the file store is used when URL is empty)
	Database DatabaseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LeagueConfig holds the domain constants used by the metric calculator.
// These are league conventions, not algorithm invariants, so they are
// tunable per deployment rather than hard-coded.
type LeagueConfig struct {
	LeagueID       int     // tracked league (ABL = 200)
	PythagExponent float64 // exponent k in the Pythagorean formula
	PowerBaseline  float64 // A term of the power score
	SeasonGames    int     // full-season game count for the B term
	RecentWindow   int     // game window for the C term ("last 10")
	BabipFlag      float64 // |BABIP - league mean| threshold for luck flags
}

// PathConfig holds filesystem roots for extracts, snapshots and archives
type PathConfig struct {
	DataDir     string // raw extract tables (CSV exports)
	SnapshotDir string // current/previous snapshot pairs, one dir per domain
	ArchiveDir  string // frozen period archives
}

// DatabaseConfig holds PostgreSQL configuration for the pg snapshot store
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		League: LeagueConfig{
			LeagueID:       getEnvAsInt("LEAGUE_ID", 200),
			PythagExponent: getEnvAsFloat("PYTHAG_EXPONENT", 2.0),
			PowerBaseline:  getEnvAsFloat("POWER_BASELINE", 90),
			SeasonGames:    getEnvAsInt("SEASON_GAMES", 162),
			RecentWindow:   getEnvAsInt("RECENT_WINDOW", 10),
			BabipFlag:      getEnvAsFloat("BABIP_FLAG_THRESHOLD", 0.015),
		},

		Paths: PathConfig{
			DataDir:     getEnv("DATA_DIR", "data"),
			SnapshotDir: getEnv("SNAPSHOT_DIR", filepath.Join("out", "snapshots")),
			ArchiveDir:  getEnv("ARCHIVE_DIR", filepath.Join("out", "archive")),
		},

		StandingsURL: getEnv("STANDINGS_URL", ""),

		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.League.PythagExponent <= 0 {
		return fmt.Errorf("PYTHAG_EXPONENT must be positive")
	}
	if c.League.SeasonGames <= 0 {
		return fmt.Errorf("SEASON_GAMES must be positive")
	}
	if c.League.RecentWindow <= 0 {
		return fmt.Errorf("RECENT_WINDOW must be positive")
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from a few known locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
