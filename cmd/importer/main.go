package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

func main() {
	var (
		amount     = flag.Int("amount", 20, "Number of questions to request from Open Trivia DB (max 50)")
		difficulty = flag.String("difficulty", "", "Optional difficulty filter: easy, medium or hard")
		baseURL    = flag.String("base-url", "https://opentdb.com", "Open Trivia DB base URL")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	imp := importer.New(importer.NewOpenTDBClient(*baseURL, nil), store, logger)
	res, err := imp.Import(ctx, *amount, *difficulty)
	if err != nil {
		logger.Error().Err(err).Int("imported", res.Imported).Msg("import failed")
		closeStore()
		os.Exit(1)
	}
	logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("done")
}
