package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     string
	CookieSecure   bool

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration
}

// Load reads .env (if present) and then the process environment. Both the
// database URL and the session secret must be set.
func Load() (*Config, error) {
	cfg, err := LoadDatabase()
	if err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET is required")
	}
	return cfg, nil
}

// LoadDatabase is Load for tools that only need the database.
func LoadDatabase() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:           getenv("PORT", "4000"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "pgx"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		SessionSecret:  getenv("SESSION_SECRET", ""),
		SessionTTL:     getenv("SESSION_TTL", "24h"),
		CookieSecure:   getenvBool("COOKIE_SECURE", false),
		DBMaxOpen:      getenvInt("DB_MAX_OPEN", 25),
		DBMaxIdle:      getenvInt("DB_MAX_IDLE", 25),
		DBMaxLifetime:  time.Duration(getenvInt("DB_MAX_LIFETIME", 300)) * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
