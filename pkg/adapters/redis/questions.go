package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/deeds/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// QuestionStore implements ports.QuestionStore using a Redis list.
// IDs come from INCR on <prefix>questions:seq.
type QuestionStore struct {
	client *backend.Client
	prefix string
}

// NewQuestionStore creates a question store on an existing client.
// An empty prefix means DefaultPrefix.
func NewQuestionStore(client *backend.Client, prefix string) *QuestionStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &QuestionStore{client: client, prefix: prefix}
}

func (s *QuestionStore) listKey() string { return s.prefix + "questions" }
func (s *QuestionStore) seqKey() string  { return s.prefix + "questions:seq" }

// Save appends q to the list and returns its ID.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) (int64, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate question id: %w", err)
	}
	q.ID = id

	data, err := json.Marshal(q)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal question: %w", err)
	}
	if err := s.client.RPush(ctx, s.listKey(), data).Err(); err != nil {
		return 0, fmt.Errorf("failed to save question: %w", err)
	}
	return id, nil
}

// List returns every question, oldest first.
func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	raw, err := s.client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for _, item := range raw {
		var q domain.Question
		if err := json.Unmarshal([]byte(item), &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Count returns the list length.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.listKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return int(n), nil
}
