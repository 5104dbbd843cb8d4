package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional; report history is disabled when empty)
	DatabaseURL string

	// Gemini (resume enhancement)
	GeminiAPIKey string
	GeminiModel  string

	// MagicalAPI (external ATS scoring)
	MagicalAPIKey string
	MagicalAPIURL string

	// apilayer (external resume field parsing)
	APILayerKey string
	APILayerURL string

	// file.io (public hosting for URL-only scoring vendors)
	FileIOURL string

	// Scoring chain, highest priority first.
	// Known providers: magicalapi, heuristic.
	ScoreProviders []string

	// Rate Limiting
	RateLimitRPS int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env if present (development only); real env vars win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", ""),
		MagicalAPIKey:  getEnv("MAGICAL_API_KEY", ""),
		MagicalAPIURL:  getEnv("MAGICAL_API_URL", ""),
		APILayerKey:    getEnv("APILAYER_API_KEY", ""),
		APILayerURL:    getEnv("APILAYER_API_URL", ""),
		FileIOURL:      getEnv("FILEIO_URL", ""),
		ScoreProviders: splitCSV(getEnv("SCORE_PROVIDERS", "magicalapi,heuristic")),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 10),
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
	}

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitCSV(origins)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
