package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, "Pool", cfg.ProjectName)
	assert.Equal(t, "Pool", cfg.ProjectTagName)
	assert.InDelta(t, 0.60, cfg.ReviewThreshold, 0.001)
	assert.Equal(t, 100, cfg.SyncPageSize)
	assert.Equal(t, 365, cfg.SyncLookbackDays)
	assert.Equal(t, 30*time.Second, cfg.PaperlessTimeout)
	assert.Equal(t, 6*time.Hour, cfg.SchedulerInterval)
	assert.True(t, cfg.SchedulerRunOnStartup)
	assert.False(t, cfg.SchedulerEnabled)
}

func TestLoadConfig_TagNameFallbackChain(t *testing.T) {
	t.Setenv("POOL_TAG_NAME", "Poolbau 2026")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Poolbau 2026", cfg.ProjectTagName)

	t.Setenv("PROJECT_TAG_NAME", "Projekt")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Projekt", cfg.ProjectTagName)
}

func TestLoadConfig_NormalizesCurrencyAndBaseURL(t *testing.T) {
	t.Setenv("DEFAULT_CURRENCY", " chf ")
	t.Setenv("PAPERLESS_BASE_URL", "http://paperless.local:8000/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.DefaultCurrency)
	assert.Equal(t, "http://paperless.local:8000", cfg.PaperlessBaseURL)
}

func TestLoadConfig_RejectsBadThreshold(t *testing.T) {
	t.Setenv("REVIEW_THRESHOLD", "1.7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.60, cfg.ReviewThreshold, 0.001)
}
