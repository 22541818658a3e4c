package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ENV_FILE = ".env"

type Config struct {
	Port         int
	DatabaseURL  string
	RedisURL     string
	LockTTL      time.Duration
	NeynarAPIKey string
	LLM          LLMConfig
	FrontendURL  string
	LogLevel     string
}

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	godotenv.Load(ENV_FILE)

	cfg := &Config{
		Port:         3000,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		LockTTL:      2 * time.Minute,
		NeynarAPIKey: getEnvFirst("NEYNAR_API_KEY", "NEYNAR_API"),
		FrontendURL:  os.Getenv("FRONTEND_URL"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			Model:    os.Getenv("LLM_MODEL"),
		},
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("LOCK_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOCK_TTL %q: %w", v, err)
		}
		cfg.LockTTL = ttl
	}

	switch cfg.LLM.Provider {
	case "anthropic":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFirst(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
