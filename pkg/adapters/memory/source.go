package memory

import (
	"context"
	"sync"

	"github.com/aretw0/deeds/pkg/tree"
)

// Source implements ports.DocumentSource and ports.Watchable over an in-memory document.
// Useful for tests and for embedding a document in a binary.
type Source struct {
	mu       sync.RWMutex
	data     []byte
	format   tree.Format
	watchers []chan struct{}
}

// NewSource creates a source holding doc. The format is sniffed when building.
func NewSource(doc string) *Source {
	return &Source{data: []byte(doc), format: tree.FormatAuto}
}

// NewSourceWithFormat creates a source holding doc in a fixed syntax.
func NewSourceWithFormat(doc []byte, format tree.Format) *Source {
	return &Source{data: append([]byte(nil), doc...), format: format}
}

// Read returns a copy of the current document.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...), nil
}

// Format reports the document syntax.
func (s *Source) Format() tree.Format {
	return s.format
}

// Update replaces the document and notifies every watcher.
func (s *Source) Update(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = []byte(doc)

	for _, ch := range s.watchers {
		// Coalesce: one pending signal is enough to trigger a reload.
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch returns a channel signaled after every Update until ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}
