package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	UserAgent      string
	StatsEndpoint  string
	RedisURL       string
	CacheTTL       time.Duration
	CacheEntries   int
	ThreadTTL      time.Duration
	ThreadEntries  int
	ProviderRPS    float64
	ProviderBurst  int
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		RequestTimeout: time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 120)) * time.Second,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		UserAgent:      getEnv("STATS_USER_AGENT", ""),
		StatsEndpoint:  getEnv("STATS_ENDPOINT", "https://stats.nba.com/stats"),
		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       time.Duration(getEnvInt("PLAY_CACHE_TTL_MINUTES", 15)) * time.Minute,
		CacheEntries:   getEnvInt("PLAY_CACHE_MAX_ENTRIES", 256),
		ThreadTTL:      time.Duration(getEnvInt("THREAD_TTL_MINUTES", 30)) * time.Minute,
		ThreadEntries:  getEnvInt("THREAD_MAX_ENTRIES", 512),
		ProviderRPS:    getEnvFloat("STATS_RATE_LIMIT_RPS", 4),
		ProviderBurst:  getEnvInt("STATS_RATE_LIMIT_BURST", 8),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
