// Package config loads application configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBPath         string
	Port           int
	DevMode        bool
	CityTablePath  string
	PartnerFeedURL string
	PartnerAPIKey  string
}

// Load reads an optional .env file and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system env vars")
	}

	return &Config{
		DBPath:         getEnv("GW_DB_PATH", ""),
		Port:           getEnvInt("GW_PORT", 8080),
		DevMode:        getEnvBool("GW_DEV_MODE", false),
		CityTablePath:  getEnv("GW_CITY_TABLE", ""),
		PartnerFeedURL: getEnv("GW_PARTNER_FEED_URL", ""),
		PartnerAPIKey:  getEnv("GW_PARTNER_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
