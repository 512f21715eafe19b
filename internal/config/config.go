package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the movie explorer service.
type Config struct {
	TMDB    TMDBConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Session SessionConfig
	Browse  BrowseConfig
	Port    string
}

// TMDBConfig holds TMDB API configuration. An empty APIKey is allowed at
// startup; every upstream call then fails with an auth error until one is
// configured.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig holds per-endpoint response TTLs. Reference data (genres,
// regions, configuration) changes rarely; listing and detail data is
// volatile.
type CacheConfig struct {
	ReferenceTTL time.Duration
	ResultsTTL   time.Duration
	DetailTTL    time.Duration
}

// SessionConfig holds session lifecycle configuration.
type SessionConfig struct {
	IdleTTL time.Duration
}

// BrowseConfig holds the display grid shape. The display page size is
// columns x rows and is intentionally smaller than the fixed TMDB page size.
type BrowseConfig struct {
	GridColumns int
	GridRows    int
}

// PageSize returns the number of items on one display page.
func (b BrowseConfig) PageSize() int {
	return b.GridColumns * b.GridRows
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_V3_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			ReferenceTTL: getDuration("CACHE_REFERENCE_TTL", 24*time.Hour),
			ResultsTTL:   getDuration("CACHE_RESULTS_TTL", 10*time.Minute),
			DetailTTL:    getDuration("CACHE_DETAIL_TTL", 10*time.Minute),
		},
		Session: SessionConfig{
			IdleTTL: getDuration("SESSION_IDLE_TTL", 12*time.Hour),
		},
		Browse: BrowseConfig{
			GridColumns: getInt("GRID_COLUMNS", 3),
			GridRows:    getInt("GRID_ROWS", 4),
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
