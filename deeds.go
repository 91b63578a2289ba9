package deeds

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/deeds/internal/adapters/file"
	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/internal/runtime"
	"github.com/aretw0/deeds/pkg/adapters/memory"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	"github.com/aretw0/deeds/pkg/session"
	"github.com/aretw0/deeds/pkg/tree"
)

// Engine is the high-level entry point for the deeds library.
// It owns the current tree, the sessions and the question store, and serves every
// transport through Reply.
type Engine struct {
	runtime   *runtime.Engine
	sessions  *session.Manager
	source    ports.DocumentSource
	store     ports.SessionStore
	questions ports.QuestionStore
	locker    ports.DistributedLocker
	messages  *domain.Messages
	hooks     domain.Hooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom DocumentSource, bypassing the file on disk.
func WithSource(src ports.DocumentSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithSessionStore sets where sessions are kept (default: memory).
func WithSessionStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithQuestionStore sets where unanswered questions are saved (default: memory).
func WithQuestionStore(store ports.QuestionStore) Option {
	return func(e *Engine) {
		e.questions = store
	}
}

// WithLocker enables distributed session locking, for engines sharing a store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMessages overrides the bot texts.
func WithMessages(m domain.Messages) Option {
	return func(e *Engine) {
		e.messages = &m
	}
}

// New builds the tree and returns a ready Engine.
// By default the document is read from docPath; with WithSource, docPath is only a label.
func New(docPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.source == nil {
		if docPath == "" {
			return nil, fmt.Errorf("docPath is required when no custom source is provided")
		}
		absPath, err := filepath.Abs(docPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		src := file.NewSource(absPath)
		src.Logger = eng.logger
		eng.source = src
	}
	if docPath != "" {
		eng.Name = filepath.Base(docPath)
		eng.logger = eng.logger.With("document", eng.Name)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.questions == nil {
		eng.questions = memory.NewQuestionStore()
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	}
	if eng.messages != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithMessages(*eng.messages))
	}

	nav, err := eng.build(context.Background())
	if err != nil {
		return nil, err
	}
	eng.runtime = runtime.NewEngine(nav, eng.questions, runtimeOpts...)
	return eng, nil
}

// build reads the document and constructs a new tree, reporting the attempt to OnReload.
func (e *Engine) build(ctx context.Context) (*tree.Navigator, error) {
	nav, err := e.readTree(ctx)

	ev := &domain.ReloadEvent{Timestamp: time.Now(), Err: err}
	if nav != nil {
		ev.Nodes = nav.Len()
	}
	if e.hooks.OnReload != nil {
		e.hooks.OnReload(ctx, ev)
	}
	return nav, err
}

func (e *Engine) readTree(ctx context.Context) (*tree.Navigator, error) {
	data, err := e.source.Read(ctx)
	if err != nil {
		return nil, err
	}
	nav, err := tree.Build(bytes.NewReader(data), e.source.Format())
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	return nav, nil
}

// Reply handles one input for sessionID. The session is created on first contact and
// saved after every successful reply.
func (e *Engine) Reply(ctx context.Context, sessionID string, in domain.Input) (domain.Reply, error) {
	var reply domain.Reply
	err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, s *domain.Session) (*domain.Session, error) {
		next, r, err := e.runtime.Handle(ctx, s, in)
		if err != nil {
			return nil, err
		}
		reply = r
		return next, nil
	})
	if err != nil {
		return domain.Reply{}, err
	}
	return reply, nil
}

// Navigator returns the tree currently served.
func (e *Engine) Navigator() *tree.Navigator {
	return e.runtime.Tree()
}

// Reload rebuilds the tree from the source and swaps it in.
// When the new document does not build, the current tree keeps being served.
func (e *Engine) Reload(ctx context.Context) error {
	nav, err := e.build(ctx)
	if err != nil {
		e.logger.Warn("reload failed, keeping current tree", "err", err)
		return err
	}
	e.runtime.SetTree(nav)
	e.logger.Info("tree reloaded", "nodes", nav.Len())
	return nil
}

// Watch reloads the tree on every change reported by the source until ctx is done.
// Returns an error right away if the source cannot be watched.
func (e *Engine) Watch(ctx context.Context) error {
	w, ok := e.source.(ports.Watchable)
	if !ok {
		return fmt.Errorf("current source does not support watching")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch document: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			// Reload already logs failures; a broken save must not stop the watcher.
			_ = e.Reload(ctx)
		}
	}
}

// Questions lists the saved unanswered questions, oldest first.
func (e *Engine) Questions(ctx context.Context) ([]domain.Question, error) {
	return e.questions.List(ctx)
}

// Sessions returns the session manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Messages returns the texts the bot answers with.
func (e *Engine) Messages() domain.Messages {
	return e.runtime.Messages()
}

// Source returns the document source.
func (e *Engine) Source() ports.DocumentSource {
	return e.source
}

var (
	_ ports.Bot            = (*Engine)(nil)
	_ ports.QuestionLister = (*Engine)(nil)
)
