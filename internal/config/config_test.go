package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/cfspeed")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"PORT", "API_URL", "DATASET_ROOT", "DATASET_FALLBACK_ROOT", "CATALOG_TTL",
		"STAGE_CACHE_SIZE", "CF_API_BASE", "CF_TIMEOUT", "SYNC_SCHEDULE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, []string{"public", "cfspeed/public"}, cfg.DatasetRoots)
	assert.Equal(t, 5*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, 64, cfg.StageCache)
	assert.Equal(t, "https://codeforces.com/api", cfg.CfAPIBase)
	assert.Equal(t, 10*time.Second, cfg.CfTimeout)
	assert.Equal(t, "@every 6h", cfg.SyncSchedule)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("API_URL", "127.0.0.1")
	t.Setenv("DATASET_ROOT", "/data")
	t.Setenv("CATALOG_TTL", "30s")
	t.Setenv("STAGE_CACHE_SIZE", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Address())
	assert.Equal(t, "/data", cfg.DatasetRoots[0])
	assert.Equal(t, 30*time.Second, cfg.CatalogTTL)
	assert.Equal(t, 8, cfg.StageCache)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"CATALOG_TTL":      "soon",
		"CF_TIMEOUT":       "-1s",
		"STAGE_CACHE_SIZE": "zero",
		"LOG_LEVEL":        "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("missing db url", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		t.Setenv("JWT_SECRET", "secret")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_URL")
	})
}
