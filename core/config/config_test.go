package config_test

import (
	"testing"

	"stock-reconciler/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Reconcile.IntervalMinutes)
	assert.Equal(t, 500, cfg.Reconcile.BatchLimit)
	assert.False(t, cfg.Storage.Enabled)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("RECONCILE_BATCH_LIMIT", "25")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 25, cfg.Reconcile.BatchLimit)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
