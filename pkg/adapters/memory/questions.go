package memory

import (
	"context"
	"sync"

	"github.com/aretw0/deeds/pkg/domain"
)

// QuestionStore implements ports.QuestionStore in memory.
type QuestionStore struct {
	mu        sync.RWMutex
	questions []domain.Question
}

// NewQuestionStore creates an empty question store.
func NewQuestionStore() *QuestionStore {
	return &QuestionStore{}
}

// Save appends q and assigns it the next ID, starting at 1.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = int64(len(s.questions) + 1)
	s.questions = append(s.questions, q)
	return q.ID, nil
}

// List returns a copy of the stored questions, oldest first.
func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Question(nil), s.questions...), nil
}

// Count returns the number of stored questions.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}
