// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"sportsbook/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	JWTSecret string

	OddsAPIKey           string
	OddsRegion           string
	OddsCricketSportKey  string
	OddsFootballSportKey string
	QuotesCacheTTL       time.Duration

	// RedisAddr is optional; empty disables the quote snapshot cache.
	RedisAddr string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := getEnv("SERVER_PORT", "4000")

	dbPortStr := getEnv("DB_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	cacheTTLStr := getEnv("QUOTES_CACHE_TTL", "30s")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTES_CACHE_TTL: %w", err)
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "sportsbookdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-this"),

		OddsAPIKey:           getEnv("ODDS_API_KEY", ""),
		OddsRegion:           getEnv("ODDS_REGION", "uk"),
		OddsCricketSportKey:  getEnv("ODDS_CRICKET_SPORT_KEY", "cricket_ipl"),
		OddsFootballSportKey: getEnv("ODDS_FOOTBALL_SPORT_KEY", "soccer_epl"),
		QuotesCacheTTL:       cacheTTL,

		RedisAddr: getEnv("REDIS_ADDR", ""),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@betapp.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@12345"),
	}, nil
}

// getEnv returns the environment variable value or the default.
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
