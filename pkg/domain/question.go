package domain

import "time"

// Question is an unanswered user question kept for the maintainers.
type Question struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}
