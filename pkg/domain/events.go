package domain

import (
	"context"
	"time"
)

// ReplyEvent is emitted once per handled input.
type ReplyEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Input     Input     `json:"input"`
	Reply     Reply     `json:"reply"`
}

// QuestionEvent is emitted after a question was persisted.
type QuestionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Question  Question  `json:"question"`
}

// ReloadEvent is emitted after every attempt to rebuild the tree.
type ReloadEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Nodes     int       `json:"nodes"`
	Err       error     `json:"-"`
}

// Hooks defines callbacks for engine observability.
// Nil fields are skipped.
type Hooks struct {
	OnReply         func(context.Context, *ReplyEvent)
	OnQuestionSaved func(context.Context, *QuestionEvent)
	OnReload        func(context.Context, *ReloadEvent)
}

// MergeHooks returns Hooks that call each of hs in order.
func MergeHooks(hs ...Hooks) Hooks {
	var merged Hooks
	for _, h := range hs {
		h := h
		if h.OnReply != nil {
			prev := merged.OnReply
			merged.OnReply = func(ctx context.Context, e *ReplyEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnReply(ctx, e)
			}
		}
		if h.OnQuestionSaved != nil {
			prev := merged.OnQuestionSaved
			merged.OnQuestionSaved = func(ctx context.Context, e *QuestionEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnQuestionSaved(ctx, e)
			}
		}
		if h.OnReload != nil {
			prev := merged.OnReload
			merged.OnReload = func(ctx context.Context, e *ReloadEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnReload(ctx, e)
			}
		}
	}
	return merged
}
