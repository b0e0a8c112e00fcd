package dsl

import "github.com/aretw0/nfa/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name        string
	start       bool
	final       bool
	transitions []domain.Transition
	builder     *Builder
}

// Start marks this state as the start state, replacing any earlier choice.
func (s *StateBuilder) Start() *StateBuilder {
	for _, other := range s.builder.states {
		other.start = false
	}
	s.start = true
	return s
}

// Final marks this state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds an edge labelled symbol to every target.
// The symbol joins the alphabet if it is not there yet.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	s.builder.symbol(symbol)
	s.transitions = append(s.transitions, domain.Transition{
		From: s.name,
		On:   symbol,
		To:   targets,
	})
	return s
}

// Epsilon adds an edge that consumes no input.
func (s *StateBuilder) Epsilon(targets ...string) *StateBuilder {
	s.transitions = append(s.transitions, domain.Transition{
		From: s.name,
		On:   domain.EpsilonLabel,
		To:   targets,
	})
	return s
}

// Add is a shortcut to declare the next state.
func (s *StateBuilder) Add(name string) *StateBuilder {
	return s.builder.Add(name)
}
