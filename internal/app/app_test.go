package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

func TestOpenStoreSQLiteMigratesAndSeeds(t *testing.T) {
	cfg := &config.App{Store: config.Store{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "trivia.db"),
	}}

	store, closeStore, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := &config.App{Store: config.Store{Driver: "mongo"}}

	_, _, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := &config.App{
		Name:                    "trivia-api",
		Env:                     "test",
		HTTPAddr:                "127.0.0.1:0",
		GracefulShutdownTimeout: time.Second,
		Store: config.Store{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "trivia.db"),
		},
	}
	store, closeStore, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	a := &Application{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		store:      store,
		closeStore: closeStore,
		http:       server.NewHTTPServer(cfg, zerolog.Nop(), server.Options{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
