package main

import (
	"os"
	"strconv"

	"github.com/ivaohu/ivao-tracker/db"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config gathers everything read from the environment in one place, so
// the rest of the program takes it as an explicit dependency.
type Config struct {
	WhazzupURL     string
	UpdateInterval int // seconds
	ListenAddr     string
	LogLevel       string
	DB             db.Config
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig(log zerolog.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	interval := 60
	if s := os.Getenv("UPDATE_INTERVAL"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			interval = n
		}
	}

	return Config{
		WhazzupURL:     getenv("WHAZZUP_URL", "https://api.ivao.aero/v2/tracker/whazzup"),
		UpdateInterval: interval,
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DB: db.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
