package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithSQLite(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverSQLite)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddr)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.Equal(t, "trivia.db", cfg.Store.SQLitePath)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
}

func TestLoadPostgresRequiresConnectionInfo(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("PG_HOST", "")
	t.Setenv("PG_USER", "postgres")
	t.Setenv("PG_PASSWORD", "")
	t.Setenv("PG_DATABASE", "trivia")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PG_HOST")
	assert.Contains(t, err.Error(), "PG_PASSWORD")
	assert.NotContains(t, err.Error(), "PG_USER")
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverGormPostgres)
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_USER", "postgres")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "trivia")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "host=db port=6543 user=postgres password=secret dbname=trivia sslmode=disable", cfg.Postgres.DSN())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown STORE_DRIVER")
}
