package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickwise/pickwise-backend/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "pickwise", cfg.Database.Database)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.History.Cap)
	assert.Equal(t, 3, cfg.Session.QuestionsDef)
	assert.Equal(t, "http://localhost:8000", cfg.Engine.BaseURL)
	assert.Empty(t, cfg.Identity.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HISTORY_CAP", "5")
	t.Setenv("ENGINE_BASE_URL", "http://engine:8000")
	t.Setenv("IDENTITY_URL", "https://auth.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5, cfg.History.Cap)
	assert.Equal(t, "http://engine:8000", cfg.Engine.BaseURL)
	assert.Equal(t, "https://auth.example.com", cfg.Identity.URL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "pickwise",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=pickwise sslmode=require",
		cfg.DatabaseDSN(),
	)
}
