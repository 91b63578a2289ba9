package ports

import (
	"context"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/tree"
)

// Bot is the interface transports drive.
// It hides sessions, locking and persistence behind a single call per input.
type Bot interface {
	// Reply handles one input for the given session and returns the answer.
	Reply(ctx context.Context, sessionID string, in domain.Input) (domain.Reply, error)

	// Navigator returns the tree currently served.
	Navigator() *tree.Navigator
}

// QuestionLister is implemented by bots that expose the saved questions.
type QuestionLister interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}
