package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Store combines the question and category repositories over one pgx pool.
type Store struct {
	*QuestionRepository
	*CategoryRepository
	db pinger
}

var _ trivia.Store = (*Store)(nil)

// NewStore builds a Store on top of pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return newStore(sqlcgen.New(pool), pool)
}

func newStore(queries sqlcgen.Querier, db pinger) *Store {
	return &Store{
		QuestionRepository: NewQuestionRepository(queries),
		CategoryRepository: NewCategoryRepository(queries),
		db:                 db,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
