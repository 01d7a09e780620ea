package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type App struct {
	Port           string
	Env            string
	LogLevel       string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
}

type Database struct {
	URL string
}

type Redis struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type AI struct {
	ServiceURL string
}

type Preview struct {
	WSAddr     string
	ChromePath string
}

type Config struct {
	App      App
	Database Database
	Redis    Redis
	AI       AI
	Preview  Preview
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		App: App{
			Port:           getEnv("PORT", "3000"),
			Env:            getEnv("APP_ENV", "production"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT", 15*time.Second),
			SessionTTL:     getEnvSeconds("SESSION_TTL", 30*time.Minute),
		},
		Database: Database{URL: os.Getenv("DATABASE_URL")},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      getEnvSeconds("REDIS_TTL", 600*time.Second),
		},
		AI: AI{ServiceURL: os.Getenv("AI_SERVICE_URL")},
		Preview: Preview{
			WSAddr:     getEnv("PREVIEW_WS_ADDR", ":3001"),
			ChromePath: os.Getenv("CHROME_PATH"),
		},
	}
}

func (c Config) IsDevelopment() bool { return c.App.Env == "development" }

// NewLogger builds the process logger: text output in development, JSON
// otherwise.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.App.LogLevel)}
	if c.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvSeconds reads a positive number of seconds.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	n := getEnvInt(key, 0)
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
