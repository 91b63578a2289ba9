package runner

import (
	"context"

	"github.com/aretw0/deeds/pkg/domain"
)

// IOHandler defines the strategy for talking to the user.
// This allows switching between Text (interactive terminal) and JSON (scripted) modes.
type IOHandler interface {
	// Output presents a reply to the user.
	Output(ctx context.Context, reply domain.Reply) error

	// Input reads one line from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (errors, status) that is not a bot reply.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms reply text before it is printed.
// This allows TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Button is one option the user can pick by number.
type Button struct {
	Label string
	Input domain.Input
}

// Buttons lists the options of reply in display order: inline choices first, then the
// reply keyboard. Numbering starts at 1.
func Buttons(reply domain.Reply) []Button {
	opts := make([]Button, 0, len(reply.Choices)+len(reply.Keyboard))
	for _, c := range reply.Choices {
		opts = append(opts, Button{Label: c.Label, Input: domain.CallbackInput(c.Data)})
	}
	for _, k := range reply.Keyboard {
		opts = append(opts, Button{Label: k, Input: domain.TextInput(k)})
	}
	return opts
}
