// Load envs from .env
// Load optional YAML policy file
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL  string
	Port         string
	JWTSecret    string
	GeminiAPIKey string

	Guard GuardPolicy
}

// GuardPolicy holds the tunables of the duplicate/rate guard and the
// mapping-confidence recalculation. Cap and window are configuration,
// not hard-coded constants.
type GuardPolicy struct {
	RateLimitCap      int           `yaml:"rate_limit_cap"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`
	DefaultConfidence float64       `yaml:"default_confidence"`
	ConfidenceAlpha   float64       `yaml:"confidence_alpha"`
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		Port:         getEnv("PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		Guard: GuardPolicy{
			RateLimitCap:      50,
			RateLimitWindow:   24 * time.Hour,
			DefaultConfidence: 0.5,
			ConfidenceAlpha:   0.1,
		},
	}

	// Optional policy file overrides the guard defaults
	if data, err := os.ReadFile(getEnv("POLICY_FILE", "configs/policy.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg.Guard); err != nil {
			log.Fatalf("Error parsing policy.yaml: %v", err)
		}
	}

	// Env vars win over the policy file
	cfg.Guard.RateLimitCap = getEnvInt("RATE_LIMIT_CAP", cfg.Guard.RateLimitCap)
	if window := os.Getenv("RATE_LIMIT_WINDOW"); window != "" {
		d, err := time.ParseDuration(window)
		if err != nil {
			log.Fatalf("Invalid RATE_LIMIT_WINDOW: %v", err)
		}
		cfg.Guard.RateLimitWindow = d
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if cfg.Guard.ConfidenceAlpha < 0.05 || cfg.Guard.ConfidenceAlpha > 0.2 {
		log.Fatalf("confidence_alpha %.2f out of range [0.05, 0.2]", cfg.Guard.ConfidenceAlpha)
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
