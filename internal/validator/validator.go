package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/schema"
)

// Report is the structural analysis of one definition.
type Report struct {
	Name string `json:"name"`

	// Rejected lists construction calls the compiler refused, or the parse
	// failure when the document could not be read at all.
	Rejected []string `json:"rejected,omitempty"`

	// Unreachable states cannot be entered from the start state.
	Unreachable []string `json:"unreachable,omitempty"`

	// Dead states cannot reach any final state.
	Dead []string `json:"dead,omitempty"`

	// UnusedSymbols are alphabet symbols that label no edge.
	UnusedSymbols []string `json:"unused_symbols,omitempty"`

	NoStart       bool `json:"no_start,omitempty"`
	NoFinal       bool `json:"no_final,omitempty"`
	Deterministic bool `json:"deterministic"`
}

// OK reports whether the definition compiled cleanly and has no useless states.
func (r *Report) OK() bool {
	return len(r.Rejected) == 0 && len(r.Unreachable) == 0 && len(r.Dead) == 0 && !r.NoStart && !r.NoFinal
}

// Validate loads and analyses the named automata, or every automaton the
// loader lists when no name is given.
// Structural problems end up in the reports; the error is reserved for
// loader failures.
func Validate(loader ports.AutomatonLoader, parser *compiler.Parser, names ...string) ([]*Report, error) {
	if len(names) == 0 {
		all, err := loader.ListAutomata()
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		names = all
	}

	reports := make([]*Report, 0, len(names))
	var missing []string

	for _, name := range names {
		raw, err := loader.GetAutomaton(name)
		if err != nil {
			if errors.Is(err, domain.ErrAutomatonNotFound) {
				missing = append(missing, name)
				continue
			}
			return nil, fmt.Errorf("failed to load '%s': %w", name, err)
		}

		def, err := parser.Parse(raw)
		if err != nil {
			reports = append(reports, &Report{Name: name, Rejected: messages(err)})
			continue
		}
		reports = append(reports, ValidateDefinition(def))
	}

	if len(missing) > 0 {
		return reports, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, strings.Join(missing, ", "))
	}
	return reports, nil
}

// ValidateDefinition compiles def and inspects the resulting graph.
func ValidateDefinition(def *domain.Definition) *Report {
	report := &Report{}
	if def != nil {
		report.Name = def.Name
	}

	a, err := compiler.Compile(def)
	if err != nil {
		report.Rejected = messages(err)
	}
	Inspect(a, report)
	return report
}

// Inspect fills the graph-derived fields of report from a.
func Inspect(a *automaton.NFA, report *Report) {
	report.Deterministic = a.IsDeterministic()
	report.NoFinal = len(a.Finals()) == 0

	start, ok := a.Start()
	if !ok {
		report.NoStart = true
	} else {
		reached := forward(a, start)
		for _, name := range a.States() {
			id, _ := a.State(name)
			if !reached.Has(id) {
				report.Unreachable = append(report.Unreachable, name)
			}
		}
	}

	alive := backward(a)
	used := make(map[automaton.Symbol]bool)
	for _, name := range a.States() {
		id, _ := a.State(name)
		if !alive.Has(id) {
			report.Dead = append(report.Dead, name)
		}
		for _, sym := range a.Symbols(id) {
			used[sym] = true
		}
	}

	for _, sym := range a.Alphabet() {
		if !used[sym] {
			report.UnusedSymbols = append(report.UnusedSymbols, string(sym))
		}
	}
}

// forward is a breadth-first crawl over every edge, epsilon included.
func forward(a *automaton.NFA, start automaton.StateID) automaton.StateSet {
	visited := automaton.NewStateSet(start)
	queue := []automaton.StateID{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, sym := range a.Symbols(current) {
			for next := range a.Destinations(current, sym) {
				if visited.Add(next) {
					queue = append(queue, next)
				}
			}
		}
	}
	return visited
}

// backward collects the states from which some final state is reachable.
func backward(a *automaton.NFA) automaton.StateSet {
	reverse := make(map[automaton.StateID][]automaton.StateID)
	for _, name := range a.States() {
		id, _ := a.State(name)
		for _, sym := range a.Symbols(id) {
			for next := range a.Destinations(id, sym) {
				reverse[next] = append(reverse[next], id)
			}
		}
	}

	alive := automaton.NewStateSet()
	var queue []automaton.StateID
	for _, name := range a.Finals() {
		id, _ := a.State(name)
		alive.Add(id)
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[current] {
			if alive.Add(prev) {
				queue = append(queue, prev)
			}
		}
	}
	return alive
}

func messages(err error) []string {
	if errs := schema.ValidationErrors(err); len(errs) > 0 {
		out := make([]string, 0, len(errs))
		for _, e := range errs {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
