package automaton

// EpsilonClosure returns every state reachable from id through zero or more
// epsilon edges, id included. Each state is expanded at most once, so epsilon
// cycles are harmless.
func (n *NFA) EpsilonClosure(id StateID) StateSet {
	closure := NewStateSet()
	if !n.valid(id) {
		return closure
	}

	closure.Add(id)
	stack := []StateID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for next := range n.states[current].destinations(Epsilon) {
			if closure.Add(next) {
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// Step advances the active set by one symbol: it follows every sym edge out of
// current and closes the result under epsilon edges.
func (n *NFA) Step(current StateSet, sym Symbol) StateSet {
	moved := NewStateSet()
	for id := range current {
		if !n.valid(id) {
			continue
		}
		moved.AddAll(n.states[id].destinations(sym))
	}

	next := NewStateSet()
	for id := range moved {
		if next.Has(id) {
			// Already covered by an earlier closure.
			continue
		}
		next.AddAll(n.EpsilonClosure(id))
	}
	return next
}

// Accepts reports whether the automaton accepts input.
// Without a start state, or on a rune outside the alphabet, it returns false.
func (n *NFA) Accepts(input string) bool {
	if _, ok := n.Start(); !ok {
		return false
	}
	active, consumed := n.walk(input, nil)
	return consumed && active.Intersects(n.final)
}

// MaxCopies returns the largest active set seen while reading input, counting
// the epsilon closure of the start state. The walk stops at the first rune
// outside the alphabet and reports the peak reached so far. It returns 0 when
// no start state is set.
func (n *NFA) MaxCopies(input string) int {
	if _, ok := n.Start(); !ok {
		return 0
	}
	peak := 0
	n.walk(input, func(_ Symbol, active StateSet) {
		if active.Len() > peak {
			peak = active.Len()
		}
	})
	return peak
}

// IsDeterministic reports whether no state has an epsilon edge and every state
// has exactly one destination for every alphabet symbol.
func (n *NFA) IsDeterministic() bool {
	for _, s := range n.states {
		if s.destinations(Epsilon).Len() > 0 {
			return false
		}
		for sym := range n.sigma {
			if s.destinations(sym).Len() != 1 {
				return false
			}
		}
	}
	return true
}

// walk runs the subset simulation from the closure of the start state.
// visit, when set, sees the initial set (with Epsilon as symbol) and every
// set produced by Step. It returns the last active set and whether the whole
// input was consumed.
func (n *NFA) walk(input string, visit func(Symbol, StateSet)) (StateSet, bool) {
	start, ok := n.Start()
	if !ok {
		return NewStateSet(), false
	}

	active := n.EpsilonClosure(start)
	if visit != nil {
		visit(Epsilon, active)
	}

	for _, sym := range input {
		if !n.InAlphabet(sym) {
			return active, false
		}
		active = n.Step(active, sym)
		if visit != nil {
			visit(sym, active)
		}
	}
	return active, true
}
