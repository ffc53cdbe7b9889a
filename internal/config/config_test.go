package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("VIEW_TICK_INTERVAL_SECONDS", "")
	t.Setenv("VIEW_TOAST_TTL_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.View.TickInterval())
	assert.Equal(t, 3*time.Second, cfg.View.ToastTTL())
	assert.False(t, cfg.View.StrictAssignee)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("VIEW_TICK_INTERVAL_SECONDS", "5")
	t.Setenv("VIEW_STRICT_ASSIGNEE", "true")
	t.Setenv("METRICS_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, 5*time.Second, cfg.View.TickInterval())
	assert.True(t, cfg.View.StrictAssignee)
	assert.True(t, cfg.Metrics.Enabled, "invalid bool falls back to default")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("VIEW_TICK_INTERVAL_SECONDS", "-1")
	_, err = Load()
	assert.Error(t, err)
}
