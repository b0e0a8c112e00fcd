package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/internal/presentation/graph"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Engine defines the interface for the automaton engine.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Definition(ctx context.Context, name string) (*domain.Definition, error)
	Automaton(ctx context.Context, name string) (*automaton.NFA, error)
	Accepts(ctx context.Context, name, input string) (bool, error)
	MaxCopies(ctx context.Context, name, input string) (int, error)
	IsDeterministic(ctx context.Context, name string) (bool, error)
	Trace(ctx context.Context, name, input string) (*automaton.Trace, error)
	Register(ctx context.Context, def *domain.Definition) error
}

// Server implements ServerInterface
type Server struct {
	Engine Engine
	Logger *slog.Logger
	parser *compiler.Parser
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the request logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &Server{
		Engine: engine,
		Logger: cfg.logger,
		parser: compiler.NewParser(),
	}
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.Logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))

	handler := HandlerFromMux(server, r)
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "nfa-http",
		"version":     strings.TrimSpace(nfa.Version),
		"api_version": apiVersion,
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, "ListAutomata", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Automata: names})
}

// GetAutomaton handles the GET /automata/{name} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request, name string) {
	def, err := s.Engine.Definition(r.Context(), name)
	if err != nil {
		s.fail(w, "GetAutomaton", err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// PutAutomaton handles the PUT /automata/{name} request.
// The body is a JSON or YAML definition; its name defaults to the path.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request, name string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
		return
	}

	// YAML is a superset of JSON, so one decoder serves both content types.
	raw := make(map[string]any)
	if err := yaml.Unmarshal(body, &raw); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		s.Logger.Warn("PutAutomaton: Invalid request body", "error", err)
		return
	}
	if given, ok := raw["name"]; ok && given != name {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("name %v does not match path %q", given, name)})
		return
	}
	raw["name"] = name

	def, err := s.parser.ParseMap(raw)
	if err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	if err := s.Engine.Register(r.Context(), def); err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAccepts handles the GET /automata/{name}/accepts request.
func (s *Server) GetAccepts(w http.ResponseWriter, r *http.Request, name string, params InputParams) {
	s.accepts(w, r, name, deref(params.Input))
}

// PostAccepts handles the POST /automata/{name}/accepts request.
// POST exists for inputs that do not fit comfortably in a URL.
func (s *Server) PostAccepts(w http.ResponseWriter, r *http.Request, name string) {
	var body QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.Logger.Warn("PostAccepts: Invalid request body", "error", err)
		return
	}
	s.accepts(w, r, name, deref(body.Input))
}

func (s *Server) accepts(w http.ResponseWriter, r *http.Request, name, input string) {
	if !s.validInput(w, input) {
		return
	}
	ok, err := s.Engine.Accepts(r.Context(), name, input)
	if err != nil {
		s.fail(w, "Accepts", err)
		return
	}
	writeJSON(w, http.StatusOK, AcceptsResponse{Automaton: name, Input: input, Accepted: ok})
}

// GetMaxCopies handles the GET /automata/{name}/max-copies request.
func (s *Server) GetMaxCopies(w http.ResponseWriter, r *http.Request, name string, params InputParams) {
	input := deref(params.Input)
	if !s.validInput(w, input) {
		return
	}
	n, err := s.Engine.MaxCopies(r.Context(), name, input)
	if err != nil {
		s.fail(w, "MaxCopies", err)
		return
	}
	writeJSON(w, http.StatusOK, MaxCopiesResponse{Automaton: name, Input: input, MaxCopies: n})
}

// GetDeterministic handles the GET /automata/{name}/deterministic request.
func (s *Server) GetDeterministic(w http.ResponseWriter, r *http.Request, name string) {
	ok, err := s.Engine.IsDeterministic(r.Context(), name)
	if err != nil {
		s.fail(w, "IsDeterministic", err)
		return
	}
	writeJSON(w, http.StatusOK, DeterministicResponse{Automaton: name, Deterministic: ok})
}

// GetTrace handles the GET /automata/{name}/trace request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request, name string, params InputParams) {
	input := deref(params.Input)
	if !s.validInput(w, input) {
		return
	}
	tr, err := s.Engine.Trace(r.Context(), name, input)
	if err != nil {
		s.fail(w, "Trace", err)
		return
	}
	writeJSON(w, http.StatusOK, mapTrace(name, input, tr))
}

// GetGraph handles the GET /automata/{name}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, name string, params InputParams) {
	a, err := s.Engine.Automaton(r.Context(), name)
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}

	var overlay *graph.GraphOverlay
	if params.Input != nil {
		tr, err := s.Engine.Trace(r.Context(), name, *params.Input)
		if err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		overlay = graph.TraceOverlay(tr)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(a, overlay))
}

func (s *Server) validInput(w http.ResponseWriter, input string) bool {
	if !utf8.ValidString(input) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "input must be valid UTF-8"})
		return false
	}
	return true
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrReadOnlyLoader):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, domain.ErrInvalidDefinition):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T {
	return &v
}

func mapTrace(name, input string, tr *automaton.Trace) TraceResponse {
	resp := TraceResponse{
		Automaton: name,
		Input:     input,
		Initial:   nonNil(tr.Initial),
		Steps:     make([]TraceStep, len(tr.Steps)),
		Halted:    tr.Halted,
		Accepted:  tr.Accepted,
		MaxCopies: tr.MaxCopies,
	}
	for i, step := range tr.Steps {
		resp.Steps[i] = TraceStep{Symbol: string(step.Symbol), Active: nonNil(step.Active)}
	}
	if tr.Halted {
		resp.HaltedAt = ptr(tr.HaltedAt)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
