package nfa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aretw0/loam"
	"github.com/aretw0/nfa/internal/compiler"
	loamAdapter "github.com/aretw0/nfa/pkg/adapters/loam"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/schema"
)

// Engine is the high-level entry point for the library.
// It resolves automata by name through a loader, compiles them once and
// answers queries against the cached result.
type Engine struct {
	loader ports.AutomatonLoader
	parser *compiler.Parser
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	strict bool

	mu    sync.RWMutex
	cache map[string]*compiled

	Name string
}

type compiled struct {
	def *domain.Definition
	nfa *automaton.NFA
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom AutomatonLoader, bypassing the default Loam initialization.
func WithLoader(l ports.AutomatonLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrict makes any rejected construction call fail the lookup.
// By default the engine logs the rejections and serves the partial automaton.
func WithStrict() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New initializes a new Engine.
// By default, it uses a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		parser: compiler.NewParser(),
		cache:  make(map[string]*compiled),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)

		// Strict mode gives every adapter the same numeric types, and
		// read-only mode keeps Loam from writing into the definitions folder.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		typedRepo := loam.NewTypedRepository[loamAdapter.Metadata](repo)
		eng.loader = loamAdapter.New(typedRepo)
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repo", eng.Name)
	}

	return eng, nil
}

// Loader returns the underlying AutomatonLoader used by the engine.
func (e *Engine) Loader() ports.AutomatonLoader {
	return e.loader
}

// List returns the names of every automaton the loader knows.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.ListAutomata()
}

// Definition returns a copy of the parsed definition of name.
func (e *Engine) Definition(ctx context.Context, name string) (*domain.Definition, error) {
	c, err := e.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.def.Clone(), nil
}

// Automaton returns the compiled automaton for name.
// The result is shared with other callers and must not be modified.
func (e *Engine) Automaton(ctx context.Context, name string) (*automaton.NFA, error) {
	c, err := e.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.nfa, nil
}

// Accepts reports whether the automaton called name accepts input.
func (e *Engine) Accepts(ctx context.Context, name, input string) (bool, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return false, err
	}

	start := time.Now()
	ok := a.Accepts(input)
	e.query(ctx, name, domain.OpAccepts, input, ok, 0, start)
	return ok, nil
}

// MaxCopies returns the peak number of simultaneously active states while
// the automaton called name reads input.
func (e *Engine) MaxCopies(ctx context.Context, name, input string) (int, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	n := a.MaxCopies(input)
	e.query(ctx, name, domain.OpMaxCopies, input, n > 0, n, start)
	return n, nil
}

// IsDeterministic reports whether the automaton called name is a DFA.
func (e *Engine) IsDeterministic(ctx context.Context, name string) (bool, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return false, err
	}

	start := time.Now()
	ok := a.IsDeterministic()
	e.query(ctx, name, domain.OpDeterministic, "", ok, 0, start)
	return ok, nil
}

// Trace simulates input step by step on the automaton called name.
func (e *Engine) Trace(ctx context.Context, name, input string) (*automaton.Trace, error) {
	a, err := e.Automaton(ctx, name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tr := a.Trace(input)
	e.query(ctx, name, domain.OpTrace, input, tr.Accepted, tr.MaxCopies, start)
	return &tr, nil
}

// Register saves def through the loader and drops any cached copy.
// The loader must also be a ports.DefinitionStore, and def must compile
// without rejected calls.
func (e *Engine) Register(ctx context.Context, def *domain.Definition) error {
	store, ok := e.loader.(ports.DefinitionStore)
	if !ok {
		return domain.ErrReadOnlyLoader
	}
	if def == nil || def.Name == "" {
		return fmt.Errorf("%w: definition missing name", domain.ErrInvalidDefinition)
	}
	if _, err := compiler.Compile(def); err != nil {
		return err
	}

	if err := store.Save(ctx, def); err != nil {
		return fmt.Errorf("failed to save automaton %s: %w", def.Name, err)
	}

	e.Invalidate(def.Name)
	e.logger.Info("automaton registered", "automaton", def.Name, "states", len(def.States))
	return nil
}

// Invalidate drops cached automata so that the next lookup reloads them.
// Without names the whole cache is cleared.
func (e *Engine) Invalidate(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(names) == 0 {
		e.cache = make(map[string]*compiled)
		return
	}
	for _, name := range names {
		delete(e.cache, name)
	}
}

func (e *Engine) lookup(ctx context.Context, name string) (*compiled, error) {
	e.mu.RLock()
	c, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return c, nil
	}

	raw, err := e.loader.GetAutomaton(name)
	if err != nil {
		return nil, err
	}

	def, err := e.parser.Parse(raw)
	if err != nil {
		e.emitCompile(ctx, name, 0, 0, true)
		return nil, fmt.Errorf("failed to parse automaton %s: %w", name, err)
	}

	a, err := compiler.Compile(def)
	rejected := len(schema.ValidationErrors(err))
	if err != nil {
		if e.strict {
			e.emitCompile(ctx, name, a.Len(), rejected, true)
			return nil, fmt.Errorf("failed to compile automaton %s: %w", name, err)
		}
		e.logger.Warn("automaton compiled with rejected calls",
			"automaton", name,
			"rejected", rejected,
			"error", err,
		)
	}
	e.emitCompile(ctx, name, a.Len(), rejected, false)

	c = &compiled{def: def, nfa: a}

	e.mu.Lock()
	// Another goroutine may have compiled the same name meanwhile; keep theirs.
	if existing, ok := e.cache[name]; ok {
		c = existing
	} else {
		e.cache[name] = c
	}
	e.mu.Unlock()

	return c, nil
}

func (e *Engine) emitCompile(ctx context.Context, name string, states, rejected int, isError bool) {
	if e.hooks.OnCompile == nil {
		return
	}
	e.hooks.OnCompile(ctx, &domain.CompileEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventCompile,
			Automaton: name,
		},
		States:   states,
		Rejected: rejected,
		IsError:  isError,
	})
}

func (e *Engine) query(ctx context.Context, name, op, input string, result bool, width int, start time.Time) {
	elapsed := time.Since(start)
	inputLen := utf8.RuneCountInString(input)

	e.logger.Debug("query",
		"automaton", name,
		"op", op,
		"input_len", inputLen,
		"result", result,
	)

	if e.hooks.OnQuery == nil {
		return
	}
	e.hooks.OnQuery(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{
			Timestamp: start,
			Type:      domain.EventQuery,
			Automaton: name,
		},
		Operation:   op,
		InputLength: inputLen,
		Result:      result,
		Width:       width,
		Duration:    elapsed,
	})
}

// IsNotFound reports whether err means the automaton does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrAutomatonNotFound)
}
