package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/yatube")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("DB_MAX_LIFETIME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Equal(t, "24h", cfg.SessionTTL)
	assert.Equal(t, 300*time.Second, cfg.DBMaxLifetime)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/yatube")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:yatube.db")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_MAX_OPEN", "3")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 3, cfg.DBMaxOpen)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadDatabaseSkipsSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/yatube")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/yatube", cfg.DatabaseURL)
}
