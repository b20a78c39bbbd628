package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port         string
	ApiURL       string
	DBURL        string
	JWTSecret    string
	DatasetRoots []string
	CatalogTTL   time.Duration
	StageCache   int
	CfAPIBase    string
	CfTimeout    time.Duration
	SyncSchedule string
	LogLevel     log.Level
}

const (
	defaultPort            = "8080"
	defaultDatasetRoot     = "public"
	defaultDatasetFallback = "cfspeed/public"
	defaultCatalogTTL      = 5 * time.Minute
	defaultStageCache      = 64
	defaultCfAPIBase       = "https://codeforces.com/api"
	defaultCfTimeout       = 10 * time.Second
	defaultSyncSchedule    = "@every 6h"
)

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration like 5m, got %q", key, raw)
	}
	return d, nil
}

// Load reads the configuration from the environment. DB_URL and JWT_SECRET
// are required, everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", defaultPort),
		ApiURL:       getEnv("API_URL", ""),
		DBURL:        getEnv("DB_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CfAPIBase:    getEnv("CF_API_BASE", defaultCfAPIBase),
		SyncSchedule: getEnv("SYNC_SCHEDULE", defaultSyncSchedule),
		DatasetRoots: []string{
			getEnv("DATASET_ROOT", defaultDatasetRoot),
			getEnv("DATASET_FALLBACK_ROOT", defaultDatasetFallback),
		},
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL not found in environment")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET not found in environment")
	}

	var err error
	if cfg.CatalogTTL, err = getDuration("CATALOG_TTL", defaultCatalogTTL); err != nil {
		return Config{}, err
	}
	if cfg.CfTimeout, err = getDuration("CF_TIMEOUT", defaultCfTimeout); err != nil {
		return Config{}, err
	}

	cfg.StageCache = defaultStageCache
	if raw := getEnv("STAGE_CACHE_SIZE", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("STAGE_CACHE_SIZE must be a positive integer, got %q", raw)
		}
		cfg.StageCache = n
	}

	cfg.LogLevel = log.InfoLevel
	if raw := getEnv("LOG_LEVEL", ""); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL, %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func (c Config) Address() string {
	return c.ApiURL + ":" + c.Port
}
