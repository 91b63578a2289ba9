package middleware

import "github.com/aretw0/deeds/pkg/ports"

// SessionMiddleware allows wrapping a SessionStore to add behavior.
type SessionMiddleware func(ports.SessionStore) ports.SessionStore

// QuestionMiddleware allows wrapping a QuestionStore to add behavior.
type QuestionMiddleware func(ports.QuestionStore) ports.QuestionStore
