package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	MazeWordTarget  int
	MemorizeSeconds int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:mindflow.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		MazeWordTarget:  envIntOr("MAZE_WORD_TARGET", 5),
		MemorizeSeconds: envIntOr("MEMORIZE_SECONDS", 15),
	}
}

// Validate reports every bad field at once so a misconfigured deployment
// surfaces all problems in one run.
func (c Config) Validate() error {
	var errs []string

	if c.Addr == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.MazeWordTarget < 1 {
		errs = append(errs, "MAZE_WORD_TARGET must be at least 1")
	}
	if c.MemorizeSeconds < 0 {
		errs = append(errs, "MEMORIZE_SECONDS cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
