package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFormat is "console" or "json".
	LogFormat string
	// ReportFormat is "text", "yaml", "json" or "none".
	ReportFormat string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		LogLevel:     getEnv("BILINGUAL_LOG_LEVEL", "info"),
		LogFormat:    getEnv("BILINGUAL_LOG_FORMAT", "console"),
		ReportFormat: getEnv("BILINGUAL_REPORT_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
