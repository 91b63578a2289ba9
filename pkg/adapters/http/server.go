package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/deeds"
	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	"github.com/aretw0/deeds/pkg/runner"
	"github.com/aretw0/deeds/pkg/tree"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server -o api.gen.go openapi.yaml

// Server exposes a Bot over a JSON API. It implements the generated ServerInterface.
type Server struct {
	Bot     ports.Bot
	Streams *StreamManager
	Logger  *slog.Logger

	gatherer prometheus.Gatherer
	validate bool
	spec     *openapi3.T
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithGatherer serves the metrics of g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRequestValidation toggles checking /v1 requests against the OpenAPI document (default on).
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) {
		s.validate = enabled
	}
}

// NewServer loads the embedded OpenAPI document and prepares a server for bot.
func NewServer(bot ports.Bot, opts ...Option) (*Server, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Bot:      bot,
		Streams:  NewStreamManager(),
		Logger:   logging.NewNop(),
		validate: true,
		spec:     spec,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.Logger
	return s, nil
}

// NewHandler creates a new HTTP handler for bot.
func NewHandler(bot ports.Bot, opts ...Option) (http.Handler, error) {
	s, err := NewServer(bot, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler()
}

// Handler builds the router.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	var mws []MiddlewareFunc
	if s.validate {
		v, err := requestValidator(s.spec, s.Logger)
		if err != nil {
			return nil, err
		}
		mws = append(mws, v)
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      mws,
		ErrorHandlerFunc: s.paramError,
	}), nil
}

// paramError answers query parameters the generated wrapper could not bind.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Warn("invalid request parameter", "path", r.URL.Path, "err", err)
	s.writeError(w, http.StatusBadRequest, err.Error(), "")
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, label string) {
	resp := Error{Error: msg}
	if label != "" {
		resp.Label = &label
	}
	s.writeJSON(w, status, resp)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Status{Status: ptr("ok")})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "deeds-http",
		"version":     strings.TrimSpace(deeds.Version),
		"api_version": apiVersion,
	})
}

// GetTree handles GET /v1/tree.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mapEntriesFromDomain(s.Bot.Navigator().Entries()))
}

// GetChildren handles GET /v1/tree/children.
func (s *Server) GetChildren(w http.ResponseWriter, r *http.Request, params GetChildrenParams) {
	nav := s.Bot.Navigator()

	var (
		label    string
		children []string
		err      error
	)
	if params.Label == nil || *params.Label == "" {
		label, err = nav.Root()
		if err == nil {
			children, err = nav.Children(label)
		}
	} else {
		label = *params.Label
		children, err = nav.Children(label)
	}

	var idxErr *tree.IndexError
	if errors.As(err, &idxErr) {
		s.writeError(w, http.StatusNotFound, err.Error(), idxErr.Label)
		return
	}
	if err != nil {
		s.Logger.Error("children lookup failed", "label", label, "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error(), label)
		return
	}
	s.writeJSON(w, http.StatusOK, Children{Label: &label, Children: &children})
}

// GetContains handles GET /v1/tree/contains.
func (s *Server) GetContains(w http.ResponseWriter, r *http.Request, params GetContainsParams) {
	contains := s.Bot.Navigator().Contains(params.Label)
	s.writeJSON(w, http.StatusOK, Contains{Label: &params.Label, Contains: &contains})
}

// PostMessage handles POST /v1/messages. A missing session id starts a new session.
func (s *Server) PostMessage(w http.ResponseWriter, r *http.Request) {
	var body PostMessageJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", "")
		s.Logger.Warn("PostMessage: invalid request body", "err", err)
		return
	}

	clean, err := runner.SanitizeInput(body.Text)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err), "")
		s.Logger.Warn("PostMessage: input rejected", "err", err, "size", len(body.Text))
		return
	}
	if clean == "" {
		s.writeError(w, http.StatusBadRequest, "text is required", "")
		return
	}

	sessionID := deref(body.SessionId)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	in := domain.ParseInput(clean)
	in.UserID = deref(body.UserId)

	s.reply(w, r, sessionID, in)
}

// PostCallback handles POST /v1/callbacks.
func (s *Server) PostCallback(w http.ResponseWriter, r *http.Request) {
	var body PostCallbackJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", "")
		s.Logger.Warn("PostCallback: invalid request body", "err", err)
		return
	}
	if body.SessionId == "" {
		s.writeError(w, http.StatusBadRequest, "session_id is required", "")
		return
	}

	in := domain.CallbackInput(body.Data)
	in.UserID = deref(body.UserId)
	s.reply(w, r, body.SessionId, in)
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, sessionID string, in domain.Input) {
	reply, err := s.Bot.Reply(r.Context(), sessionID, in)
	switch {
	case errors.Is(err, domain.ErrEmptyCallback), errors.Is(err, domain.ErrUnknownCallback):
		s.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	case err != nil:
		s.Logger.Error("reply failed", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	s.writeJSON(w, http.StatusOK, ReplyResponse{SessionId: &sessionID, Reply: ptr(mapReplyFromDomain(reply))})
}

// ListQuestions handles GET /v1/questions.
func (s *Server) ListQuestions(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.Bot.(ports.QuestionLister)
	if !ok {
		s.writeError(w, http.StatusNotImplemented, "questions are not available", "")
		return
	}
	questions, err := lister.Questions(r.Context())
	if err != nil {
		s.Logger.Error("list questions failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	s.writeJSON(w, http.StatusOK, mapQuestionsFromDomain(questions))
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func mapReplyFromDomain(r domain.Reply) Reply {
	kind := ReplyKind(r.Kind)
	res := Reply{
		Kind: &kind,
		Text: &r.Text,
	}
	if len(r.Keyboard) > 0 {
		res.Keyboard = &r.Keyboard
	}
	if len(r.Choices) > 0 {
		choices := make([]Choice, len(r.Choices))
		for i, c := range r.Choices {
			choices[i] = Choice{Label: ptr(c.Label), Data: ptr(c.Data)}
		}
		res.Choices = &choices
	}
	if r.ClearChoices {
		res.ClearChoices = ptr(true)
	}
	return res
}

func mapEntriesFromDomain(entries []tree.Entry) []Entry {
	res := make([]Entry, len(entries))
	for i, e := range entries {
		res[i] = Entry{
			Id:     ptr(int(e.ID)),
			Parent: ptr(int(e.Parent)),
			Label:  ptr(e.Label),
			Depth:  ptr(e.Depth),
			Leaf:   ptr(e.Leaf),
			Answer: ptr(e.Answer),
		}
	}
	return res
}

func mapQuestionsFromDomain(questions []domain.Question) []Question {
	res := make([]Question, len(questions))
	for i, q := range questions {
		res[i] = Question{
			Id:        ptr(q.ID),
			SessionId: ptr(q.SessionID),
			UserId:    ptr(q.UserID),
			Question:  ptr(q.Text),
			CreatedAt: ptr(q.CreatedAt),
		}
	}
	return res
}
