package trivia

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Service implements the trivia operations on top of an injected Store.
type Service struct {
	store  Store
	logger zerolog.Logger
	intn   func(n int) int
}

// ServiceOptions tunes optional behaviour. A nil Intn uses math/rand/v2.
type ServiceOptions struct {
	Intn func(n int) int
}

func NewService(store Store, logger zerolog.Logger, opts ServiceOptions) *Service {
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "trivia_service").Logger(),
		intn:   intn,
	}
}

// CategoriesResponse is returned by GET /categories.
type CategoriesResponse struct {
	Success    bool        `json:"success"`
	Categories CategoryMap `json:"categories"`
}

// QuestionListResponse is returned by GET /questions.
type QuestionListResponse struct {
	Success         bool                `json:"success"`
	Questions       []FormattedQuestion `json:"questions"`
	TotalQuestions  int                 `json:"total_questions"`
	Categories      CategoryMap         `json:"categories"`
	CurrentCategory *int64              `json:"currentCategory"`
}

// DeleteResponse is returned by DELETE /questions/{id}.
type DeleteResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// CreateResponse is returned by POST /questions.
type CreateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SearchResponse is returned by POST /questions/search.
type SearchResponse struct {
	Success        bool                `json:"success"`
	Questions      []FormattedQuestion `json:"questions"`
	TotalQuestions int                 `json:"total_questions"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions.
type CategoryQuestionsResponse struct {
	Success         bool                `json:"success"`
	Questions       []FormattedQuestion `json:"questions"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentCategory int64               `json:"current_category"`
}

// QuizResponse is returned by POST /quizzes. Question is a FormattedQuestion,
// or false once every candidate has been asked.
type QuizResponse struct {
	Success  bool `json:"success"`
	Question any  `json:"question"`
}

// Categories lists every category as an id -> type mapping.
func (s *Service) Categories(ctx context.Context) (CategoriesResponse, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return CategoriesResponse{}, fmt.Errorf("list categories: %w", err)
	}
	return CategoriesResponse{Success: true, Categories: categoryMap(categories)}, nil
}

// Questions returns one page of all questions ordered by id.
func (s *Service) Questions(ctx context.Context, page int) (QuestionListResponse, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionListResponse{}, fmt.Errorf("list questions: %w", err)
	}
	paged := Paginate(page, questions)
	if len(paged) == 0 {
		return QuestionListResponse{}, fmt.Errorf("questions page %d: %w", page, ErrNotFound)
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return QuestionListResponse{}, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return QuestionListResponse{}, fmt.Errorf("no categories: %w", ErrNotFound)
	}

	return QuestionListResponse{
		Success:        true,
		Questions:      formatAll(paged),
		TotalQuestions: len(questions),
		Categories:     categoryMap(categories),
	}, nil
}

// DeleteQuestion removes a question permanently.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) (DeleteResponse, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return DeleteResponse{}, fmt.Errorf("get question %d: %w", id, err)
	}
	if err := s.store.DeleteQuestion(ctx, q.ID); err != nil {
		return DeleteResponse{}, fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int64("question_id", q.ID).Msg("question deleted")
	return DeleteResponse{Success: true, ID: q.ID}, nil
}

// CreateQuestion validates and inserts a question. Store failures are reported as bad requests.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (CreateResponse, error) {
	if err := validateStruct(&req); err != nil {
		return CreateResponse{}, err
	}
	q, err := s.store.InsertQuestion(ctx, req.toNewQuestion())
	if err != nil {
		return CreateResponse{}, badRequest("insert question", err)
	}
	s.logger.Info().Int64("question_id", q.ID).Int64("category", q.Category).Msg("question created")
	return CreateResponse{Success: true, Message: "question added"}, nil
}

// SearchQuestions matches the term case-insensitively against question text.
func (s *Service) SearchQuestions(ctx context.Context, req SearchRequest, page int) (SearchResponse, error) {
	if err := validateStruct(&req); err != nil {
		return SearchResponse{}, err
	}
	matches, err := s.store.SearchQuestions(ctx, *req.SearchTerm)
	if err != nil {
		return SearchResponse{}, badRequest("search questions", err)
	}
	return SearchResponse{
		Success:        true,
		Questions:      formatAll(Paginate(page, matches)),
		TotalQuestions: len(matches),
	}, nil
}

// QuestionsByCategory returns one page of the questions in a category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (CategoryQuestionsResponse, error) {
	questions, err := s.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestionsResponse{}, fmt.Errorf("list category %d questions: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return CategoryQuestionsResponse{}, fmt.Errorf("category %d has no questions: %w", categoryID, ErrNotFound)
	}
	return CategoryQuestionsResponse{
		Success:         true,
		Questions:       formatAll(Paginate(page, questions)),
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	}, nil
}

// NextQuizQuestion picks a random question from the pool that is not in
// PreviousQuestions, or reports completion with Question=false.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (QuizResponse, error) {
	if err := validateStruct(&req); err != nil {
		return QuizResponse{}, err
	}
	categoryID := int64(*req.QuizCategory.ID)

	var (
		candidates []Question
		err        error
	)
	if categoryID == 0 {
		candidates, err = s.store.ListQuestions(ctx)
	} else {
		candidates, err = s.store.ListQuestionsByCategory(ctx, categoryID)
	}
	if err != nil {
		return QuizResponse{}, badRequest("load quiz candidates", err)
	}
	if len(candidates) == 0 {
		return QuizResponse{}, fmt.Errorf("quiz category %d: %w", categoryID, ErrNotFound)
	}

	asked := make(map[int64]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		asked[id] = struct{}{}
	}
	remaining := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := asked[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		s.logger.Debug().Int64("category", categoryID).Int("asked", len(asked)).Msg("quiz exhausted")
		return QuizResponse{Success: true, Question: false}, nil
	}

	return QuizResponse{Success: true, Question: remaining[s.intn(len(remaining))].Format()}, nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}
