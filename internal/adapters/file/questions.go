package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/deeds/pkg/domain"
)

// QuestionStore implements ports.QuestionStore as an append-only JSON Lines file.
type QuestionStore struct {
	Path string

	mu     sync.Mutex
	lastID int64
	loaded bool
}

// NewQuestionStore creates a store writing to path.
// If path is empty, it defaults to ".deeds/questions.jsonl".
func NewQuestionStore(path string) *QuestionStore {
	if path == "" {
		path = filepath.Join(".deeds", "questions.jsonl")
	}
	return &QuestionStore{Path: path}
}

// Save appends q as one line and returns its ID.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		questions, err := s.read()
		if err != nil {
			return 0, err
		}
		if n := len(questions); n > 0 {
			s.lastID = questions[n-1].ID
		}
		s.loaded = true
	}

	q.ID = s.lastID + 1
	line, err := json.Marshal(q)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal question: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to ensure question directory: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open question file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return 0, fmt.Errorf("failed to append question: %w", err)
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("failed to fsync question file: %w", err)
	}

	s.lastID = q.ID
	return q.ID, nil
}

// List reads every question back, oldest first.
func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Count returns the number of stored questions.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	questions, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

func (s *QuestionStore) read() ([]domain.Question, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer f.Close()

	var questions []domain.Question
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && !isBlank(line) {
			var q domain.Question
			if jerr := json.Unmarshal(line, &q); jerr != nil {
				return nil, fmt.Errorf("failed to decode question at line %d: %w", lineNo, jerr)
			}
			questions = append(questions, q)
		}
		if errors.Is(err, io.EOF) {
			return questions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read question file: %w", err)
		}
	}
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}
