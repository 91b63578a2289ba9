package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/deeds/pkg/domain"
	badgerdb "github.com/dgraph-io/badger/v4"
)

var (
	questionPrefix = []byte("question/")
	lastIDKey      = []byte("meta/last_question_id")
)

// QuestionStore implements ports.QuestionStore on an embedded Badger database.
// Questions are JSON values keyed by a big-endian ID, so key order is insertion order.
type QuestionStore struct {
	db *badgerdb.DB
	mu sync.Mutex
}

// Open opens (creating if needed) a store under dir.
// An empty dir opens an in-memory database.
func Open(dir string, logger *slog.Logger) (*QuestionStore, error) {
	var opts badgerdb.Options
	if dir == "" {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
		opts = badgerdb.DefaultOptions(dir)
	}

	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &QuestionStore{db: db}, nil
}

// Save stores q under the next ID.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		var last uint64
		item, err := txn.Get(lastIDKey)
		switch {
		case errors.Is(err, badgerdb.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(v []byte) error {
				last = binary.BigEndian.Uint64(v)
				return nil
			}); err != nil {
				return err
			}
		}

		q.ID = int64(last + 1)
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("failed to marshal question: %w", err)
		}
		if err := txn.Set(questionKey(q.ID), data); err != nil {
			return err
		}
		return txn.Set(lastIDKey, encodeID(q.ID))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save question: %w", err)
	}
	return q.ID, nil
}

// List returns every question in ID order.
func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = questionPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var q domain.Question
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &q)
			}); err != nil {
				return err
			}
			questions = append(questions, q)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Count walks the keys without reading values.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = questionPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// Close releases the database.
func (s *QuestionStore) Close() error {
	return s.db.Close()
}

func questionKey(id int64) []byte {
	return append(append([]byte(nil), questionPrefix...), encodeID(id)...)
}

func encodeID(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
