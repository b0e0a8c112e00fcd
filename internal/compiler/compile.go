package compiler

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/schema"
)

// Compile replays def as construction calls on a fresh automaton: states,
// alphabet, start, final states, then transitions, each in document order.
//
// A rejected call is recorded and the build continues, so the returned
// automaton is always usable. When anything was rejected the error wraps
// domain.ErrInvalidDefinition and a *schema.AggregateError listing every
// failure.
func Compile(def *domain.Definition) (*automaton.NFA, error) {
	a := automaton.New()
	if def == nil {
		return a, fmt.Errorf("%w: nil definition", domain.ErrInvalidDefinition)
	}

	var errs schema.AggregateError

	for i, name := range def.States {
		if !a.AddState(name) {
			errs.Append(fieldError("states", i, "duplicate state", name))
		}
	}

	for i, raw := range def.Alphabet {
		sym, err := ParseSymbol(raw)
		if err != nil {
			errs.Append(fieldError("alphabet", i, err.Error(), raw))
			continue
		}
		if sym == automaton.Epsilon {
			errs.Append(fieldError("alphabet", i, "epsilon label cannot be an alphabet symbol", raw))
			continue
		}
		a.AddSymbol(sym)
	}

	if def.Start != "" && !a.SetStart(def.Start) {
		errs.Append(&schema.ValidationError{Key: "start", Reason: "unknown state", Value: def.Start})
	}

	for i, name := range def.Final {
		if !a.SetFinal(name) {
			errs.Append(fieldError("final", i, "unknown state", name))
		}
	}

	for i, t := range def.Transitions {
		sym := automaton.Epsilon
		if !t.IsEpsilon() {
			var err error
			sym, err = ParseSymbol(t.On)
			if err != nil {
				errs.Append(fieldError("transitions", i, err.Error(), t.On))
				continue
			}
		}
		if !a.AddTransition(t.From, t.To, sym) {
			errs.Append(fieldError("transitions", i, explainTransition(a, t, sym), t.On))
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return a, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}
	return a, nil
}

// ParseSymbol converts a definition label into a symbol.
func ParseSymbol(s string) (automaton.Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// explainTransition recovers why AddTransition refused t, since the
// construction API only reports success or failure.
func explainTransition(a *automaton.NFA, t domain.Transition, sym automaton.Symbol) string {
	if sym != automaton.Epsilon && !a.InAlphabet(sym) {
		return "symbol not in alphabet"
	}
	if _, ok := a.State(t.From); !ok {
		return fmt.Sprintf("unknown source state %q", t.From)
	}
	for _, to := range t.To {
		if _, ok := a.State(to); !ok {
			return fmt.Sprintf("unknown destination state %q", to)
		}
	}
	return "rejected"
}

func fieldError(field string, index int, reason string, value any) *schema.ValidationError {
	return &schema.ValidationError{
		Key:    fmt.Sprintf("%s[%d]", field, index),
		Reason: reason,
		Value:  value,
	}
}
