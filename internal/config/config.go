package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	APIBaseURL      string
	LogLevel        string
	CacheTTL        time.Duration
	CacheDBPath     string
	UpstreamRPS     float64
	UpstreamBurst   int
	UpstreamTimeout time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":3000"),
		APIBaseURL:      getenv("API_BASE_URL", "http://localhost:8000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		CacheTTL:        time.Duration(getint("CACHE_TTL_SECONDS", 60)) * time.Second,
		CacheDBPath:     getenv("CACHE_DB_PATH", "webclient_cache.db"),
		UpstreamRPS:     getfloat("UPSTREAM_RPS", 50),
		UpstreamBurst:   getint("UPSTREAM_BURST", 100),
		UpstreamTimeout: time.Duration(getint("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	return cfg, nil
}
