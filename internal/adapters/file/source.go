package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/tree"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// Source implements ports.DocumentSource and ports.Watchable over a document on disk.
type Source struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewSource creates a source for the document at path.
func NewSource(path string) *Source {
	return &Source{Path: path, Debounce: DefaultDebounce, Logger: logging.NewNop()}
}

// Read returns the current file contents.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", s.Path, err)
	}
	return data, nil
}

// Format guesses the syntax from the file extension.
func (s *Source) Format() tree.Format {
	return tree.FormatFromPath(s.Path)
}

// Watch signals on the returned channel whenever the document is written, created or
// replaced. The parent directory is watched so that editors saving through a rename
// are still noticed. Bursts are coalesced into one signal per debounce window.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(s.Path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", s.Path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("document event", "path", event.Name, "op", event.Op.String())

				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					timer.Reset(debounce)
				}

			case <-timerC:
				timer, timerC = nil, nil
				select {
				case out <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("document watcher error", "err", err)
			}
		}
	}()

	return out, nil
}
