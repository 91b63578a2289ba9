package mcp

import (
	"context"
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
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

// TreeURI identifies the tree resource.
const TreeURI = "deeds://tree"

// ChildrenResult is the output of list_children.
type ChildrenResult struct {
	Label    string   `json:"label" jsonschema_description:"The label whose children are listed"`
	Children []string `json:"children" jsonschema_description:"Child labels in document order"`
}

// LookupResult is the output of lookup.
type LookupResult struct {
	Label         string   `json:"label"`
	Found         bool     `json:"found" jsonschema_description:"Whether any node carries the label"`
	Parent        string   `json:"parent,omitempty"`
	Children      []string `json:"children,omitempty"`
	AnswerBearing bool     `json:"answer_bearing" jsonschema_description:"Whether the label is a question owning an answer"`
	Answer        string   `json:"answer,omitempty"`
}

// AskResult is the output of ask.
type AskResult struct {
	SessionID string       `json:"session_id"`
	Reply     domain.Reply `json:"reply"`
}

type childrenArgs struct {
	Label string `mapstructure:"label"`
}

type lookupArgs struct {
	Label string `mapstructure:"label"`
}

type askArgs struct {
	SessionID string `mapstructure:"session_id"`
	UserID    int64  `mapstructure:"user_id"`
	Text      string `mapstructure:"text"`
	Callback  string `mapstructure:"callback"`
}

// Server exposes a Bot as an MCP server.
type Server struct {
	bot       ports.Bot
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(bot ports.Bot, opts ...Option) *Server {
	s := &Server{
		bot:       bot,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("deeds-mcp", strings.TrimSpace(deeds.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	childrenTool := mcp.NewTool("list_children",
		mcp.WithDescription("List the labels directly under a label. The root is used when label is omitted."),
		mcp.WithString("label", mcp.Description("Parent label (optional)")),
		mcp.WithOutputSchema[ChildrenResult](),
	)
	s.mcpServer.AddTool(childrenTool, mcp.NewStructuredToolHandler(s.handleListChildren))

	lookupTool := mcp.NewTool("lookup",
		mcp.WithDescription("Describe the node carrying a label: its parent, children and answer."),
		mcp.WithString("label", mcp.Required(), mcp.Description("Label to look up")),
		mcp.WithOutputSchema[LookupResult](),
	)
	s.mcpServer.AddTool(lookupTool, mcp.NewStructuredToolHandler(s.handleLookup))

	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Send a message or a save/nosave callback to the bot, as a chat user would."),
		mcp.WithString("session_id", mcp.Description("Conversation id. A new one is generated when omitted.")),
		mcp.WithNumber("user_id", mcp.Description("Numeric user id recorded with saved questions")),
		mcp.WithString("text", mcp.Description("Message text or command such as /start")),
		mcp.WithString("callback", mcp.Description("Callback data (save or nosave). Takes precedence over text.")),
		mcp.WithOutputSchema[AskResult](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))
}

func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleListChildren(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ChildrenResult, error) {
	var in childrenArgs
	if err := decodeArgs(args, &in); err != nil {
		return ChildrenResult{}, err
	}

	nav := s.bot.Navigator()
	label := in.Label
	if label == "" {
		root, err := nav.Root()
		if err != nil {
			return ChildrenResult{}, err
		}
		label = root
	}
	children, err := nav.Children(label)
	if err != nil {
		return ChildrenResult{}, err
	}
	return ChildrenResult{Label: label, Children: children}, nil
}

func (s *Server) handleLookup(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (LookupResult, error) {
	var in lookupArgs
	if err := decodeArgs(args, &in); err != nil {
		return LookupResult{}, err
	}
	if in.Label == "" {
		return LookupResult{}, errors.New("label is required")
	}

	nav := s.bot.Navigator()
	res := LookupResult{Label: in.Label}
	id, ok := nav.Lookup(in.Label)
	if !ok {
		return res, nil
	}
	res.Found = true

	if pid, ok := nav.Parent(id); ok {
		res.Parent, _ = nav.Label(pid)
	}
	res.Children, _ = nav.Children(in.Label)
	res.AnswerBearing, _ = nav.IsAnswerBearing(in.Label)
	if res.AnswerBearing && len(res.Children) == 1 {
		res.Answer = res.Children[0]
	}
	return res, nil
}

func (s *Server) handleAsk(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (AskResult, error) {
	var in askArgs
	if err := decodeArgs(args, &in); err != nil {
		return AskResult{}, err
	}
	if in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}

	var input domain.Input
	switch {
	case in.Callback != "":
		input = domain.CallbackInput(in.Callback)
	case in.Text != "":
		clean, err := runner.SanitizeInput(in.Text)
		if err != nil {
			s.logger.Warn("MCP ask: input rejected", "err", err, "size", len(in.Text))
			return AskResult{}, fmt.Errorf("input rejected: %w", err)
		}
		input = domain.ParseInput(clean)
	default:
		return AskResult{}, errors.New("text or callback is required")
	}
	input.UserID = in.UserID

	reply, err := s.bot.Reply(ctx, in.SessionID, input)
	if err != nil {
		return AskResult{}, fmt.Errorf("ask failed: %w", err)
	}
	return AskResult{SessionID: in.SessionID, Reply: reply}, nil
}

func (s *Server) treeJSON() (string, error) {
	data, err := json.Marshal(s.bot.Navigator().Entries())
	if err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	return string(data), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "FAQ tree",
		mcp.WithResourceDescription("Every node of the tree in id order"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.treeJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TreeURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}
