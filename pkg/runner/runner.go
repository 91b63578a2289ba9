package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
)

// Runner drives a terminal conversation with a Bot using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler over Input/Output is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// SessionID names the conversation in the session store.
	SessionID string

	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	Banner   string
}

// NewRunner creates a Runner over Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:     os.Stdin,
		Output:    os.Stdout,
		SessionID: DefaultSessionID,
		Logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run chats until the user types exit/quit, input ends, or ctx is done.
// Unless headless, the conversation opens with /start.
func (r *Runner) Run(ctx context.Context, bot ports.Bot) error {
	handler := r.resolveHandler()
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	sessionID := r.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	signals := NewSignalManager(ctx)
	defer signals.Stop()

	var last domain.Reply
	if !r.Headless {
		if r.Banner != "" && r.Output != nil {
			fmt.Fprintln(r.Output, r.Banner)
		}
		reply, err := bot.Reply(signals.Context(), sessionID, domain.CommandInput(domain.CommandStart))
		if err != nil {
			return fmt.Errorf("failed to start conversation: %w", err)
		}
		if err := handler.Output(signals.Context(), reply); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		last = reply
	}

	for {
		line, err := handler.Input(signals.Context())
		if err != nil {
			signals.CheckRace()
			if signals.Context().Err() != nil {
				r.Logger.Debug("runner input: context done", "err", signals.Context().Err())
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			_ = handler.SystemOutput(signals.Context(), "Bye!")
			return nil
		}

		in := ResolveInput(line, last)
		reply, err := bot.Reply(signals.Context(), sessionID, in)
		if err != nil {
			if signals.Context().Err() != nil {
				return nil
			}
			r.Logger.Warn("reply failed", "session_id", sessionID, "err", err)
			if err := handler.SystemOutput(signals.Context(), err.Error()); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}

		if err := handler.Output(signals.Context(), reply); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		last = reply
	}
}

// ResolveInput turns a typed line into an Input. A number picks the matching button of
// the previous reply; anything else is parsed as a command or text.
func ResolveInput(line string, previous domain.Reply) domain.Input {
	if n, err := strconv.Atoi(line); err == nil {
		buttons := Buttons(previous)
		if n >= 1 && n <= len(buttons) {
			return buttons[n-1].Input
		}
	}
	return domain.ParseInput(line)
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
	// Memoize so a second Run reuses the same input pump.
	r.Handler = th
	return th
}
