package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration loaded from the environment.
type Config struct {
	// Server
	Host string
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Groq (OpenAI-compatible API)
	GroqAPIKey      string
	GroqModel       string
	GroqTemperature float32
	GroqMaxTokens   int

	// LibreTranslate
	LibreTranslateURL string
	LibreTranslateKey string

	// Email (optional - notifications are disabled when empty)
	EmailProvider string // "resend" or "brevo"
	EmailAPIKey   string
	EmailFrom     string
	EmailFromName string
	AdminEmail    string

	// Automation
	EnableAutomation bool
	EnableAnalytics  bool
	DailyStatsTime   string // "HH:MM", process-local clock
}

// LoadConfig reads configuration from environment variables, applying defaults.
func LoadConfig() *Config {
	cfg := &Config{
		Host:              os.Getenv("HOST"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqModel:         os.Getenv("GROQ_MODEL"),
		GroqTemperature:   envFloat32("GROQ_TEMPERATURE", 0.7),
		GroqMaxTokens:     envInt("GROQ_MAX_TOKENS", 1000),
		LibreTranslateURL: os.Getenv("LIBRETRANSLATE_URL"),
		LibreTranslateKey: os.Getenv("LIBRETRANSLATE_API_KEY"),
		EmailProvider:     os.Getenv("EMAIL_PROVIDER"),
		EmailAPIKey:       os.Getenv("EMAIL_API_KEY"),
		EmailFrom:         os.Getenv("EMAIL_FROM"),
		EmailFromName:     os.Getenv("EMAIL_FROM_NAME"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		EnableAutomation:  envBool("ENABLE_AUTOMATION", true),
		EnableAnalytics:   envBool("ENABLE_ANALYTICS", true),
		DailyStatsTime:    os.Getenv("DAILY_STATS_TIME"),
	}

	// Default values
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.GroqModel == "" {
		cfg.GroqModel = "mixtral-8x7b-32768"
	}
	if cfg.LibreTranslateURL == "" {
		cfg.LibreTranslateURL = "https://libretranslate.com/translate"
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "resend"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@example.com"
	}
	if cfg.DailyStatsTime == "" {
		cfg.DailyStatsTime = "09:00"
	}

	return cfg
}

// EmailConfigured reports whether enough email settings are present to
// build a notifier. Missing email config is not an error: notification
// actions degrade to "not configured" results.
func (c *Config) EmailConfigured() bool {
	return c.EmailAPIKey != "" && c.EmailFrom != ""
}

// Validate returns a list of configuration issues. An empty list means
// the config is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.GroqAPIKey == "" {
		issues = append(issues, "GROQ_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		issues = append(issues, "DATABASE_URL is required")
	}
	if c.LibreTranslateURL == "" {
		issues = append(issues, "LibreTranslate URL is required")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		issues = append(issues, "server port must be between 1 and 65535")
	}
	if c.EmailConfigured() && c.AdminEmail == "" {
		issues = append(issues, "admin email is required when email is configured")
	}
	if _, _, err := ParseDailyTime(c.DailyStatsTime); err != nil {
		issues = append(issues, fmt.Sprintf("invalid DAILY_STATS_TIME: %v", err))
	}

	return issues
}

// ParseDailyTime parses an "HH:MM" schedule string.
func ParseDailyTime(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️ Invalid boolean for %s: %q, using default", key, v)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid integer for %s: %q, using default", key, v)
		return def
	}
	return n
}

func envFloat32(key string, def float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Printf("⚠️ Invalid float for %s: %q, using default", key, v)
		return def
	}
	return float32(f)
}
