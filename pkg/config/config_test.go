package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.FrontendURL)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Inventory.AllowNegativeStock)
	assert.Equal(t, "0 2 * * *", cfg.Scheduler.DaysInStockCron)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("INVENTORY_ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Inventory.AllowNegativeStock)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.JWT.Secret = ""
	cfg.Storage.Driver = "sqlite"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "dockside", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/dockside?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
