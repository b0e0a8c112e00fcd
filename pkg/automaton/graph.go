package automaton

import "sort"

// NFA is a nondeterministic finite automaton over runes.
//
// It is built once through AddState, AddSymbol, SetStart, SetFinal and
// AddTransition, then queried. Construction methods report failure with a
// false return and leave the automaton untouched. Queries never mutate the
// graph, so any number of them may run concurrently once building is done.
type NFA struct {
	states []*state
	index  map[string]StateID
	sigma  map[Symbol]struct{}
	start  StateID
	final  StateSet
}

// noState marks an unset start state.
const noState StateID = -1

// New creates an empty automaton.
func New() *NFA {
	return &NFA{
		index: make(map[string]StateID),
		sigma: make(map[Symbol]struct{}),
		start: noState,
		final: NewStateSet(),
	}
}

// AddState creates a state named name.
// It returns false if a state with that name already exists.
func (n *NFA) AddState(name string) bool {
	if _, ok := n.index[name]; ok {
		return false
	}
	n.index[name] = StateID(len(n.states))
	n.states = append(n.states, newState(name))
	return true
}

// AddSymbol registers sym in the alphabet. Registering Epsilon is ignored.
func (n *NFA) AddSymbol(sym Symbol) {
	if sym == Epsilon {
		return
	}
	n.sigma[sym] = struct{}{}
}

// SetStart makes the named state the start state, replacing any previous one.
func (n *NFA) SetStart(name string) bool {
	id, ok := n.index[name]
	if !ok {
		return false
	}
	n.start = id
	return true
}

// SetFinal marks the named state as accepting.
func (n *NFA) SetFinal(name string) bool {
	id, ok := n.index[name]
	if !ok {
		return false
	}
	n.final.Add(id)
	return true
}

// AddTransition adds an edge from the state named from to every state in to,
// labelled with sym. The symbol must be Epsilon or already in the alphabet and
// every named state must exist; otherwise nothing is added and false is
// returned. Repeated edges are stored once.
func (n *NFA) AddTransition(from string, to []string, sym Symbol) bool {
	if sym != Epsilon && !n.InAlphabet(sym) {
		return false
	}
	src, ok := n.index[from]
	if !ok {
		return false
	}

	dest := make([]StateID, 0, len(to))
	for _, name := range to {
		id, ok := n.index[name]
		if !ok {
			return false
		}
		dest = append(dest, id)
	}

	for _, id := range dest {
		n.states[src].addTransition(sym, id)
	}
	return true
}

// IsStart reports whether name is the start state. Unknown names yield false.
func (n *NFA) IsStart(name string) bool {
	id, ok := n.index[name]
	return ok && n.start == id
}

// IsFinal reports whether name is an accepting state. Unknown names yield false.
func (n *NFA) IsFinal(name string) bool {
	id, ok := n.index[name]
	return ok && n.final.Has(id)
}

// InAlphabet reports whether sym was registered with AddSymbol.
func (n *NFA) InAlphabet(sym Symbol) bool {
	_, ok := n.sigma[sym]
	return ok
}

// Alphabet returns the registered symbols in ascending order.
func (n *NFA) Alphabet() []Symbol {
	out := make([]Symbol, 0, len(n.sigma))
	for sym := range n.sigma {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// State looks up a state handle by name.
func (n *NFA) State(name string) (StateID, bool) {
	id, ok := n.index[name]
	return id, ok
}

// Name returns the name of the state with handle id, or "" if there is none.
func (n *NFA) Name(id StateID) string {
	if !n.valid(id) {
		return ""
	}
	return n.states[id].name
}

// Names maps a set of handles to state names in insertion order.
func (n *NFA) Names(set StateSet) []string {
	names := make([]string, 0, set.Len())
	for _, id := range set.Sorted() {
		names = append(names, n.Name(id))
	}
	return names
}

// States returns all state names in insertion order.
func (n *NFA) States() []string {
	names := make([]string, len(n.states))
	for i, s := range n.states {
		names[i] = s.name
	}
	return names
}

// Len returns the number of states.
func (n *NFA) Len() int {
	return len(n.states)
}

// Start returns the start state handle, if one was set.
func (n *NFA) Start() (StateID, bool) {
	return n.start, n.start != noState
}

// Finals returns the accepting state names in insertion order.
func (n *NFA) Finals() []string {
	return n.Names(n.final)
}

// Destinations returns the states reachable from id by a single edge labelled
// sym. The result is a copy and may be modified by the caller.
func (n *NFA) Destinations(id StateID, sym Symbol) StateSet {
	if !n.valid(id) {
		return NewStateSet()
	}
	return n.states[id].destinations(sym).Clone()
}

// Symbols returns the labels of the edges leaving id, Epsilon included,
// in ascending order.
func (n *NFA) Symbols(id StateID) []Symbol {
	if !n.valid(id) {
		return nil
	}
	out := make([]Symbol, 0, len(n.states[id].transitions))
	for sym, dest := range n.states[id].transitions {
		if dest.Len() > 0 {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n *NFA) valid(id StateID) bool {
	return id >= 0 && int(id) < len(n.states)
}
