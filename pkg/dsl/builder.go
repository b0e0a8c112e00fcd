package dsl

import (
	"fmt"

	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	name        string
	description string
	alphabet    []string
	seenSymbol  map[string]bool
	order       []string
	states      map[string]*StateBuilder
}

// New creates a new builder for the automaton called name.
func New(name string) *Builder {
	return &Builder{
		name:       name,
		seenSymbol: make(map[string]bool),
		states:     make(map[string]*StateBuilder),
	}
}

// Describe sets the human-readable description.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// Alphabet declares input symbols up front, fixing their order.
// Symbols used by On are declared implicitly.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	for _, s := range symbols {
		b.symbol(s)
	}
	return b
}

func (b *Builder) symbol(s string) {
	if b.seenSymbol[s] {
		return
	}
	b.seenSymbol[s] = true
	b.alphabet = append(b.alphabet, s)
}

// Add creates a new state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Definition returns the serializable form of the automaton.
// States keep the order in which they were first added.
func (b *Builder) Definition() *domain.Definition {
	def := &domain.Definition{
		Name:        b.name,
		Description: b.description,
		Alphabet:    append([]string(nil), b.alphabet...),
		States:      append([]string(nil), b.order...),
	}
	for _, name := range b.order {
		sb := b.states[name]
		if sb.start {
			def.Start = name
		}
		if sb.final {
			def.Final = append(def.Final, name)
		}
		def.Transitions = append(def.Transitions, sb.transitions...)
	}
	return def
}

// Build compiles the definition into a runnable automaton.
func (b *Builder) Build() (*automaton.NFA, error) {
	a, err := compiler.Compile(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton %s: %w", b.name, err)
	}
	return a, nil
}

// Loader wraps the definition in a memory loader for use with the engine.
func (b *Builder) Loader() (*memory.Loader, error) {
	loader, err := memory.NewFromDefinitions(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
