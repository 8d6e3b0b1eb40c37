package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// foreignKeyViolation is the Postgres SQLSTATE for a broken reference.
const foreignKeyViolation = "23503"

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int64) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int64) ([]sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListQuestions returns every question ordered by id.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestion returns trivia.ErrNotFound when no row matches.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (trivia.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Question{}, trivia.ErrNotFound
		}
		return trivia.Question{}, fmt.Errorf("query question: %w", err)
	}
	return toDomainQuestion(row), nil
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if affected == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

// InsertQuestion reports an unknown category as a validation error.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	// difficulty is an INTEGER column.
	if q.Difficulty < math.MinInt32 || q.Difficulty > math.MaxInt32 {
		return trivia.Question{}, &trivia.ValidationError{Field: "difficulty", Reason: "is out of range"}
	}
	row, err := r.store.InsertQuestion(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return trivia.Question{}, &trivia.ValidationError{Field: "category", Reason: "does not exist"}
		}
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return toDomainQuestion(row), nil
}

// SearchQuestions matches term literally and case-insensitively.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, EscapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (r *QuestionRepository) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query category questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE wildcards using the default backslash escape.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func toDomainQuestion(row sqlcgen.Question) trivia.Question {
	return trivia.Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toDomainQuestions(rows []sqlcgen.Question) []trivia.Question {
	out := make([]trivia.Question, len(rows))
	for i, row := range rows {
		out[i] = toDomainQuestion(row)
	}
	return out
}
