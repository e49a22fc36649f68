package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./db.json", cfg.DatabasePath)
	assert.Equal(t, "json", cfg.StoreBackend)
	assert.Equal(t, "./backups", cfg.BackupPath)
	assert.Equal(t, "@hourly", cfg.BackupSchedule)
	assert.Equal(t, 24, cfg.BackupKeep)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DATABASE_PATH", "/tmp/todos.db")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("BACKUP_KEEP", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "/tmp/todos.db", cfg.DatabasePath)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 5, cfg.BackupKeep)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
