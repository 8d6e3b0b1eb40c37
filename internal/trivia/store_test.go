package trivia

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	questions  map[int64]Question
	categories []Category
	failWith   error
}

func newMemStore(categories ...Category) *memStore {
	return &memStore{nextID: 1, questions: map[int64]Question{}, categories: categories}
}

func seededStore(n int) *memStore {
	s := newMemStore(
		Category{ID: 1, Type: "Science"},
		Category{ID: 2, Type: "Art"},
		Category{ID: 3, Type: "Geography"},
	)
	for i := 0; i < n; i++ {
		_, _ = s.InsertQuestion(context.Background(), NewQuestion{
			Question:   "Question number " + strings.Repeat("x", i%3),
			Answer:     "Answer",
			Category:   int64(i%3) + 1,
			Difficulty: i%5 + 1,
		})
	}
	return s
}

func (s *memStore) sorted(keep func(Question) bool) []Question {
	out := []Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListQuestions(context.Context) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(Question) bool { return true }), nil
}

func (s *memStore) GetQuestion(_ context.Context, id int64) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return Question{}, s.failWith
	}
	q, ok := s.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memStore) InsertQuestion(_ context.Context, nq NewQuestion) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return Question{}, s.failWith
	}
	known := false
	for _, c := range s.categories {
		known = known || c.ID == nq.Category
	}
	if !known {
		return Question{}, &ValidationError{Field: "category", Reason: "does not exist"}
	}
	q := Question{ID: s.nextID, Question: nq.Question, Answer: nq.Answer, Category: nq.Category, Difficulty: nq.Difficulty}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *memStore) SearchQuestions(_ context.Context, term string) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	term = strings.ToLower(term)
	return s.sorted(func(q Question) bool { return strings.Contains(strings.ToLower(q.Question), term) }), nil
}

func (s *memStore) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(q Question) bool { return q.Category == categoryID }), nil
}

func (s *memStore) ListCategories(context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]Category(nil), s.categories...), nil
}

func (s *memStore) Ping(context.Context) error {
	return s.failWith
}
