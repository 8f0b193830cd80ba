package config

import (
	"os"
	"time"
)

// Config carries all environment-backed settings, loaded once by the
// composition root and passed down explicitly.
type Config struct {
	Port        string
	Env         string
	CORSOrigin  string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	// Generation service (AI categorization).
	GenerateURL     string
	GenerateModel   string
	GenerateTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GenerateURL:   getEnv("GENERATE_URL", "http://localhost:11434"),
		GenerateModel: getEnv("GENERATE_MODEL", "llama2:13b"),
	}

	timeout := 120 * time.Second
	if s := os.Getenv("GENERATE_TIMEOUT_SECONDS"); s != "" {
		if d, err := time.ParseDuration(s + "s"); err == nil {
			timeout = d
		}
	}
	cfg.GenerateTimeout = timeout

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
