package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/domain"
)

// reloadTopic is the stream key for tree reload notifications.
const reloadTopic = ""

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a listener for key and returns its channel and a cancel func.
func (sm *StreamManager) Subscribe(key string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[key]; !ok {
		sm.subscribers[key] = make(map[chan string]struct{})
	}
	sm.subscribers[key][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[key]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, key)
				}
			}
		})
	}
}

// Broadcast sends msg to every listener of key. Slow listeners miss messages.
func (sm *StreamManager) Broadcast(key string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[key] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "session_id", key)
		}
	}
}

type reloadMessage struct {
	Nodes int    `json:"nodes"`
	Error string `json:"error,omitempty"`
}

// Hooks returns engine hooks feeding the event streams: replies go to their session's
// subscribers, reloads to the subscribers without a session.
func (s *Server) Hooks() domain.Hooks {
	return domain.Hooks{
		OnReply: func(_ context.Context, e *domain.ReplyEvent) {
			if data, err := json.Marshal(e.Reply); err == nil {
				s.Streams.Broadcast(e.SessionID, string(data))
			}
		},
		OnReload: func(_ context.Context, e *domain.ReloadEvent) {
			msg := reloadMessage{Nodes: e.Nodes}
			if e.Err != nil {
				msg.Error = e.Err.Error()
			}
			if data, err := json.Marshal(msg); err == nil {
				s.Streams.Broadcast(reloadTopic, string(data))
			}
		},
	}
}

// SubscribeEvents handles GET /v1/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported", "")
		return
	}

	sessionID := deref(params.SessionId)
	event := "reply"
	if sessionID == reloadTopic {
		event = "reload"
	}

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, msg)
			flusher.Flush()
		}
	}
}
