package domain

import "time"

// Session represents the conversation snapshot of one chat.
type Session struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id,omitempty"`

	// Category is the label whose children form the current reply keyboard.
	// Empty means the keyboard shows the root children.
	Category string `json:"category,omitempty"`

	// PendingQuestion holds the last unknown text until the user decides whether to save it.
	PendingQuestion string `json:"pending_question,omitempty"`

	// Turns counts the inputs handled in this session.
	Turns int `json:"turns"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a clean session positioned at the root keyboard.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns an independent copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Reset moves the session back to the root keyboard and drops the pending question.
func (s *Session) Reset() {
	s.Category = ""
	s.PendingQuestion = ""
}
