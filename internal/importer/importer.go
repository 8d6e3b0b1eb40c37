package importer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Store is the slice of trivia.Store the importer writes through.
type Store interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
	InsertQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error)
}

type fetcher interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error)
}

// Importer copies Open Trivia DB questions into the local store.
type Importer struct {
	source fetcher
	store  Store
	logger zerolog.Logger
}

// Result summarises one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

func New(source fetcher, store Store, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		store:  store,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Import fetches amount questions and inserts those whose category maps onto a local one.
func (i *Importer) Import(ctx context.Context, amount int, difficulty string) (Result, error) {
	if amount <= 0 {
		return Result{}, errors.New("amount must be positive")
	}
	categories, err := i.store.ListCategories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list categories: %w", err)
	}
	fetched, err := i.source.Fetch(ctx, amount, difficulty)
	if err != nil {
		return Result{}, fmt.Errorf("fetch opentdb: %w", err)
	}

	res := Result{Fetched: len(fetched)}
	for _, q := range fetched {
		categoryID, ok := matchCategory(q.Category, categories)
		if !ok {
			i.logger.Debug().Str("category", q.Category).Msg("no local category, skipping")
			res.Skipped++
			continue
		}
		_, err := i.store.InsertQuestion(ctx, trivia.NewQuestion{
			Question:   html.UnescapeString(q.Question),
			Answer:     html.UnescapeString(q.CorrectAnswer),
			Category:   categoryID,
			Difficulty: difficultyScore(q.Difficulty),
		})
		if err != nil {
			return res, fmt.Errorf("insert question: %w", err)
		}
		res.Imported++
	}
	i.logger.Info().Int("fetched", res.Fetched).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

// matchCategory maps e.g. "Science: Computers" or "Entertainment: Film" onto a local category.
func matchCategory(remote string, categories []trivia.Category) (int64, bool) {
	remote = strings.ToLower(remote)
	for _, c := range categories {
		if c.Type != "" && strings.Contains(remote, strings.ToLower(c.Type)) {
			return c.ID, true
		}
	}
	return 0, false
}

func difficultyScore(level string) int {
	switch level {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}
