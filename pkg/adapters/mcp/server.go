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

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/presentation/graph"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const automataURI = "nfa://automata"

// AcceptsResponse aligns with the OpenAPI schema and provides a unified structure across adapters.
type AcceptsResponse struct {
	Automaton string `json:"automaton" jsonschema_description:"Name of the automaton"`
	Input     string `json:"input" jsonschema_description:"The input that was simulated"`
	Accepted  bool   `json:"accepted" jsonschema_description:"True when a final state is active after the whole input"`
}

// MaxCopiesResponse reports the width of nondeterminism for one input.
type MaxCopiesResponse struct {
	Automaton string `json:"automaton" jsonschema_description:"Name of the automaton"`
	Input     string `json:"input" jsonschema_description:"The input that was simulated"`
	MaxCopies int    `json:"max_copies" jsonschema_description:"Peak number of simultaneously active states"`
}

// DeterministicResponse reports whether an automaton is a DFA.
type DeterministicResponse struct {
	Automaton     string `json:"automaton" jsonschema_description:"Name of the automaton"`
	Deterministic bool   `json:"deterministic" jsonschema_description:"No epsilon edges and exactly one edge per state and symbol"`
}

// TraceResponse lists the active set after every consumed symbol.
type TraceResponse struct {
	Automaton string      `json:"automaton" jsonschema_description:"Name of the automaton"`
	Input     string      `json:"input" jsonschema_description:"The input that was simulated"`
	Initial   []string    `json:"initial" jsonschema_description:"Epsilon closure of the start state"`
	Steps     []TraceStep `json:"steps" jsonschema_description:"Active states after each symbol"`
	Halted    bool        `json:"halted" jsonschema_description:"True when a symbol outside the alphabet stopped the run"`
	Accepted  bool        `json:"accepted" jsonschema_description:"Final verdict"`
	MaxCopies int         `json:"max_copies" jsonschema_description:"Peak number of simultaneously active states"`
}

// TraceStep is one row of a trace.
type TraceStep struct {
	Symbol string   `json:"symbol"`
	Active []string `json:"active"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Automaton(ctx context.Context, name string) (*automaton.NFA, error)
	Accepts(ctx context.Context, name, input string) (bool, error)
	MaxCopies(ctx context.Context, name, input string) (int, error)
	IsDeterministic(ctx context.Context, name string) (bool, error)
	Trace(ctx context.Context, name, input string) (*automaton.Trace, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("nfa-mcp", strings.TrimSpace(nfa.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of every known automaton."),
	), s.handleList)

	acceptsTool := mcp.NewTool("accepts",
		mcp.WithDescription("Check whether an automaton accepts an input string."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Description("Input string; omitted means the empty string")),
		mcp.WithOutputSchema[AcceptsResponse](),
	)
	s.mcpServer.AddTool(acceptsTool, mcp.NewStructuredToolHandler(s.handleAccepts))

	copiesTool := mcp.NewTool("max_copies",
		mcp.WithDescription("Measure the peak number of simultaneously active states while reading an input."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Description("Input string; omitted means the empty string")),
		mcp.WithOutputSchema[MaxCopiesResponse](),
	)
	s.mcpServer.AddTool(copiesTool, mcp.NewStructuredToolHandler(s.handleMaxCopies))

	detTool := mcp.NewTool("is_deterministic",
		mcp.WithDescription("Check whether an automaton is already a DFA."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithOutputSchema[DeterministicResponse](),
	)
	s.mcpServer.AddTool(detTool, mcp.NewStructuredToolHandler(s.handleDeterministic))

	traceTool := mcp.NewTool("trace",
		mcp.WithDescription("Simulate an input step by step and list the active states after each symbol."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Description("Input string; omitted means the empty string")),
		mcp.WithOutputSchema[TraceResponse](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))

	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render an automaton as a Mermaid flowchart."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
	), s.handleGraph)
}

// Handler methods for tools

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireName(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.engine.Automaton(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(a, nil)), nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AcceptsResponse, error) {
	name, err := requireName(args)
	if err != nil {
		return AcceptsResponse{}, err
	}
	input, _ := args["input"].(string)

	ok, err := s.engine.Accepts(ctx, name, input)
	if err != nil {
		return AcceptsResponse{}, fmt.Errorf("accepts failed: %w", err)
	}
	return AcceptsResponse{Automaton: name, Input: input, Accepted: ok}, nil
}

func (s *Server) handleMaxCopies(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MaxCopiesResponse, error) {
	name, err := requireName(args)
	if err != nil {
		return MaxCopiesResponse{}, err
	}
	input, _ := args["input"].(string)

	n, err := s.engine.MaxCopies(ctx, name, input)
	if err != nil {
		return MaxCopiesResponse{}, fmt.Errorf("max_copies failed: %w", err)
	}
	return MaxCopiesResponse{Automaton: name, Input: input, MaxCopies: n}, nil
}

func (s *Server) handleDeterministic(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DeterministicResponse, error) {
	name, err := requireName(args)
	if err != nil {
		return DeterministicResponse{}, err
	}

	ok, err := s.engine.IsDeterministic(ctx, name)
	if err != nil {
		return DeterministicResponse{}, fmt.Errorf("is_deterministic failed: %w", err)
	}
	return DeterministicResponse{Automaton: name, Deterministic: ok}, nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TraceResponse, error) {
	name, err := requireName(args)
	if err != nil {
		return TraceResponse{}, err
	}
	input, _ := args["input"].(string)

	tr, err := s.engine.Trace(ctx, name, input)
	if err != nil {
		return TraceResponse{}, fmt.Errorf("trace failed: %w", err)
	}

	resp := TraceResponse{
		Automaton: name,
		Input:     input,
		Initial:   tr.Initial,
		Steps:     make([]TraceStep, len(tr.Steps)),
		Halted:    tr.Halted,
		Accepted:  tr.Accepted,
		MaxCopies: tr.MaxCopies,
	}
	for i, step := range tr.Steps {
		resp.Steps[i] = TraceStep{Symbol: string(step.Symbol), Active: step.Active}
	}
	return resp, nil
}

func requireName(args map[string]interface{}) (string, error) {
	name, _ := args["automaton"].(string)
	if name == "" {
		return "", errors.New("automaton is required")
	}
	return name, nil
}

func (s *Server) registerResources() {
	// EXPOSE: nfa://automata
	s.mcpServer.AddResource(mcp.NewResource(automataURI, "Known Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      automataURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
