package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DBPath        string
	APIBase       string
	HighlightBase string
	RedisURL      string
	PageSize      int
	MaxDepth      int
	FetchLimit    int
	CacheTTL      time.Duration
	RateLimits    RateLimits
}

type RateLimits struct {
	TreePerMinute   int
	SearchPerMinute int
}

func Load() Config {
	addr := envString("BURROW_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	cfg := Config{
		Addr:          addr,
		DBPath:        envString("BURROW_DB", "burrow.db"),
		APIBase:       envString("BURROW_API_BASE", "https://hacker-news.firebaseio.com/v0"),
		HighlightBase: envString("BURROW_HIGHLIGHT_BASE", ""),
		RedisURL:      envString("BURROW_REDIS_URL", ""),
		PageSize:      envInt("BURROW_PAGE_SIZE", 8),
		MaxDepth:      envInt("BURROW_MAX_DEPTH", 5),
		FetchLimit:    envInt("BURROW_FETCH_LIMIT", 16),
		CacheTTL:      envDuration("BURROW_CACHE_TTL", 10*time.Minute),
		RateLimits: RateLimits{
			TreePerMinute:   envInt("BURROW_RL_TREE_PER_MIN", 60),
			SearchPerMinute: envInt("BURROW_RL_SEARCH_PER_MIN", 120),
		},
	}

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
