package trivia

import "context"

// QuestionsPerPage is the fixed window size for every paginated listing.
const QuestionsPerPage = 10

// Question is a stored trivia question.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Category labels a group of questions. Categories are seeded, never written through the API.
type Category struct {
	ID   int64
	Type string
}

// NewQuestion carries the fields needed to insert a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// FormattedQuestion is the JSON projection of a Question returned to clients.
type FormattedQuestion struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// Format projects a Question into its client representation.
func (q Question) Format() FormattedQuestion {
	return FormattedQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
}

// CategoryMap is serialized as {"<id>": "<type>"}.
type CategoryMap map[int64]string

func categoryMap(categories []Category) CategoryMap {
	out := make(CategoryMap, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}

// QuestionStore persists questions. Implementations return ErrNotFound for missing rows.
type QuestionStore interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error)
}

// CategoryStore reads the seeded categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// Store is the full persistence surface the service needs.
type Store interface {
	QuestionStore
	CategoryStore
	Ping(ctx context.Context) error
}
