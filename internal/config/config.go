package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	StoreBackend   string // "json" or "sqlite"
	JWTSecret      string
	BackupPath     string
	BackupSchedule string // cron spec; empty disables backups
	BackupKeep     int
}

// Load loads configuration from a .env file (if present) and the
// environment, with defaults for everything except the JWT secret.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}
	keep, err := strconv.Atoi(getEnv("BACKUP_KEEP", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./db.json"),
		StoreBackend:   getEnv("STORE_BACKEND", "json"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		BackupPath:     getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", "@hourly"),
		BackupKeep:     keep,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
