package config

import (
	"os"
	"strconv"
	"time"

	"chess_arena/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	// DevMode swaps Postgres for the in-memory player store so the
	// server runs without a database.
	DevMode bool

	// Sessions that see no join/move/end for this long get reaped.
	// Zero disables the reaper.
	SessionIdleTimeout time.Duration
}

// Load reads configuration from the environment (.env honored).
func Load() *Config {
	_ = godotenv.Load()

	devMode := os.Getenv("DEV_MODE") == "true"

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && !devMode {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	idleMinutes := 60
	if v := os.Getenv("SESSION_IDLE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			idleMinutes = n
		}
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		DevMode:            devMode,
		SessionIdleTimeout: time.Duration(idleMinutes) * time.Minute,
	}
}
