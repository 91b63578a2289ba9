package ports

import (
	"context"

	"github.com/aretw0/deeds/pkg/domain"
)

// SessionStore defines the interface for persisting conversation sessions.
// This lets a chat resume where it was after a restart or on another replica.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given ID. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}

// QuestionStore keeps the questions the bot could not answer.
type QuestionStore interface {
	// Save appends q and returns the ID assigned to it. IDs increase with every save.
	Save(ctx context.Context, q domain.Question) (int64, error)

	// List returns every stored question, oldest first.
	List(ctx context.Context) ([]domain.Question, error)

	// Count returns the number of stored questions.
	Count(ctx context.Context) (int, error)
}
