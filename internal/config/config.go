package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBType       string
	DBDSN        string
	EntriesFile  string
	SettingsFile string

	AuthToken   string
	AuthService string

	DefaultCategory string
	DailyGoal       float64
	WarnThreshold   float64 // fraction of the daily goal below which a day is "warning"
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:             getEnv("APP_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			Port:            getEnv("PORT", "8088"),
			DBType:          getEnv("STORAGE_BACKEND", "file"),
			DBDSN:           getEnv("POSTGRES_DSN", ""),
			EntriesFile:     getEnv("ENTRIES_FILE", "data/entries.json"),
			SettingsFile:    getEnv("SETTINGS_FILE", "data/settings.json"),
			AuthToken:       getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			AuthService:     getEnv("AUTH_SERVICE_URL", ""),
			DefaultCategory: getEnv("DEFAULT_CATEGORY", "general"),
			DailyGoal:       getEnvFloat("DAILY_GOAL", 0),
			WarnThreshold:   getEnvFloat("WARN_THRESHOLD", 0.5),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.EntriesFile == "" || c.SettingsFile == "") {
		return errors.New("File storage requires ENTRIES_FILE and SETTINGS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthService == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.WarnThreshold < 0 || c.WarnThreshold > 1 {
		return errors.New("WARN_THRESHOLD must be between 0 and 1")
	}
	if c.DailyGoal < 0 {
		return errors.New("DAILY_GOAL must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		data, err := os.ReadFile(".env")
		if err != nil {
			return err
		}
		for _, l := range splitLines(string(data)) {
			if len(l) == 0 || l[0] == '#' {
				continue
			}
			kv := splitKV(l)
			if len(kv) == 2 {
				os.Setenv(kv[0], kv[1])
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
