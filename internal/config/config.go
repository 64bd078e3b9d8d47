package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is read from the environment; a .env file is honored when present.
type Config struct {
	Addr        string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration

	// Institution calendar service.
	CalendarBaseURL string
	CalendarAPIKey  string
	CalendarTimeout time.Duration
	CalendarCache   time.Duration

	// Timezone all booking dates and times are interpreted in.
	Timezone string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getenv("ADDR", ":8080"),
		DatabaseDSN:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          getduration("JWT_TTL_HOURS", 24) * time.Hour,
		CalendarBaseURL: os.Getenv("CALENDAR_BASE_URL"),
		CalendarAPIKey:  os.Getenv("CALENDAR_API_KEY"),
		CalendarTimeout: getduration("CALENDAR_TIMEOUT_SECONDS", 10) * time.Second,
		CalendarCache:   getduration("CALENDAR_CACHE_SECONDS", 30) * time.Second,
		Timezone:        getenv("TIMEZONE", "Asia/Jakarta"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(def)
}
