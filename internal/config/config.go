/**
 * @description
 * Configuration loader for the Jackpot Watch backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "encoding/json": For the GAME_PROPERTIES override
 *
 * @notes
 * - Fails fast if DATABASE_URL is missing; nothing can run without the store.
 * - Uses a Singleton-like pattern where Load() returns a Config struct.
 */

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Scraper ScraperConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings. An empty URL means the API falls back
// to an embedded in-memory instance.
type RedisConfig struct {
	URL string
}

// GameProperties holds the static per-game attributes that never appear on
// the page itself: the top-prize increment per ticket sold, and the ticket
// price. Games missing from the table resolve to nil for both.
type GameProperties struct {
	Increment *float64 `json:"increment"`
	Price     *float64 `json:"price"`
}

// ScraperConfig holds the ingestion pipeline settings
type ScraperConfig struct {
	Interval time.Duration
	DryRun   bool
	SeedURLs []string
	// Games maps the uppercase game name to its static properties.
	Games map[string]GameProperties
}

// defaultGames is the compiled-in per-game table. GAME_PROPERTIES overrides
// it wholesale when set.
func defaultGames() map[string]GameProperties {
	increment := 2.4
	price := 30.0
	return map[string]GameProperties{
		"DIAMONDS AND GOLD": {Increment: &increment, Price: &price},
	}
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Scraper: ScraperConfig{
			Interval: getEnvAsDuration("SCRAPE_INTERVAL", time.Minute),
			DryRun:   getEnv("DRY_RUN", "false") == "true",
			SeedURLs: splitList(getEnv("SEED_URLS", "")),
			Games:    defaultGames(),
		},
	}

	if raw := getEnv("GAME_PROPERTIES", ""); raw != "" {
		games := make(map[string]GameProperties)
		if err := json.Unmarshal([]byte(raw), &games); err != nil {
			return nil, fmt.Errorf("invalid GAME_PROPERTIES JSON: %w", err)
		}
		// Keys are matched against uppercase game names from the page
		normalized := make(map[string]GameProperties, len(games))
		for name, props := range games {
			normalized[strings.ToUpper(strings.TrimSpace(name))] = props
		}
		cfg.Scraper.Games = normalized
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Scraper.Interval <= 0 {
		return fmt.Errorf("SCRAPE_INTERVAL must be positive")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper to get env var as a duration ("1m", "90s", ...)
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
