package repository

import (
	"context"
	"fmt"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
}

// CategoryRepository wraps sqlc queries for the seeded categories.
type CategoryRepository struct {
	store categoryStore
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]trivia.Category, len(rows))
	for i, row := range rows {
		out[i] = trivia.Category{ID: row.ID, Type: row.Type}
	}
	return out, nil
}
