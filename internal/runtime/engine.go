package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/adapters/memory"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	"github.com/aretw0/deeds/pkg/tree"
)

// Engine turns (tree, session, input) into a reply and the next session.
// It keeps no per-chat state of its own: everything a chat needs lives in the Session.
type Engine struct {
	nav       atomic.Pointer[tree.Navigator]
	questions ports.QuestionStore
	messages  domain.Messages
	hooks     domain.Hooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMessages overrides the reply texts. Blank fields keep their defaults.
func WithMessages(m domain.Messages) Option {
	return func(e *Engine) {
		e.messages = m.WithDefaults()
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine serving nav. A nil question store keeps questions in memory.
func NewEngine(nav *tree.Navigator, questions ports.QuestionStore, opts ...Option) *Engine {
	if questions == nil {
		questions = memory.NewQuestionStore()
	}
	e := &Engine{
		questions: questions,
		messages:  domain.DefaultMessages(),
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetTree(nav)
	return e
}

// Tree returns the navigator currently served.
func (e *Engine) Tree() *tree.Navigator {
	return e.nav.Load()
}

// SetTree swaps the served tree. Sessions whose category no longer exists fall
// back to the root keyboard on their next input.
func (e *Engine) SetTree(nav *tree.Navigator) {
	if nav == nil {
		nav = tree.NewNavigator(nil, nil)
	}
	e.nav.Store(nav)
}

// Messages returns the texts in use.
func (e *Engine) Messages() domain.Messages {
	return e.messages
}

// Questions returns the question store.
func (e *Engine) Questions() ports.QuestionStore {
	return e.questions
}

// Handle processes one input. The given session is not modified; the returned one
// must be persisted by the caller. On error the session should be kept as it was.
func (e *Engine) Handle(ctx context.Context, s *domain.Session, in domain.Input) (*domain.Session, domain.Reply, error) {
	if s == nil {
		return nil, domain.Reply{}, fmt.Errorf("handle requires a session")
	}

	nav := e.Tree()
	next := s.Clone()
	next.Turns++
	if in.UserID != 0 {
		next.UserID = in.UserID
	}

	var (
		reply domain.Reply
		err   error
	)
	switch in.Kind {
	case domain.InputCommand:
		reply = e.handleCommand(nav, next, in.Text)
	case domain.InputText:
		reply, err = e.handleText(nav, next, in.Text)
	case domain.InputCallback:
		reply, err = e.handleCallback(ctx, nav, next, in.Data)
	default:
		reply = e.unsupported(nav, next)
	}
	if err != nil {
		return s, domain.Reply{}, err
	}

	e.logger.Debug("handled input",
		"session_id", next.ID,
		"kind", string(in.Kind),
		"reply", string(reply.Kind),
		"category", next.Category,
	)
	if e.hooks.OnReply != nil {
		e.hooks.OnReply(ctx, &domain.ReplyEvent{
			Timestamp: e.now(),
			SessionID: next.ID,
			Input:     in,
			Reply:     reply,
		})
	}
	return next, reply, nil
}

func (e *Engine) handleCommand(nav *tree.Navigator, s *domain.Session, name string) domain.Reply {
	var text string
	switch name {
	case domain.CommandStart:
		s.Reset()
		text = e.messages.Greeting
	case domain.CommandReset:
		s.Reset()
		text = e.messages.Reset
	case domain.CommandHelp:
		text = e.messages.Help
	default:
		text = e.messages.UnknownCommand
	}
	return domain.Reply{
		Kind:     domain.ReplyCommand,
		Text:     text,
		Keyboard: e.keyboard(nav, s),
	}
}

func (e *Engine) unsupported(nav *tree.Navigator, s *domain.Session) domain.Reply {
	return domain.Reply{
		Kind:     domain.ReplyUnsupported,
		Text:     e.messages.TextOnly,
		Keyboard: e.keyboard(nav, s),
	}
}
