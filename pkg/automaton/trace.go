package automaton

// TraceStep is the active set after reading Symbol.
type TraceStep struct {
	Symbol Symbol
	Active []string
}

// Trace records a full simulation of one input.
type Trace struct {
	// Initial is the epsilon closure of the start state.
	Initial []string
	Steps   []TraceStep
	// Halted is set when a rune outside the alphabet stopped the walk.
	// HaltedAt is its rune offset in the input, or -1.
	Halted    bool
	HaltedAt  int
	Accepted  bool
	MaxCopies int
}

// Trace simulates input and records every intermediate active set by state
// name. The verdict and peak match Accepts and MaxCopies.
func (n *NFA) Trace(input string) Trace {
	tr := Trace{HaltedAt: -1}
	if _, ok := n.Start(); !ok {
		return tr
	}

	first := true
	active, consumed := n.walk(input, func(sym Symbol, set StateSet) {
		if set.Len() > tr.MaxCopies {
			tr.MaxCopies = set.Len()
		}
		if first {
			first = false
			tr.Initial = n.Names(set)
			return
		}
		tr.Steps = append(tr.Steps, TraceStep{Symbol: sym, Active: n.Names(set)})
	})

	if !consumed {
		tr.Halted = true
		tr.HaltedAt = len(tr.Steps)
		return tr
	}
	tr.Accepted = active.Intersects(n.final)
	return tr
}
