package automaton

// Symbol is a single input character.
type Symbol = rune

// Epsilon marks a transition that consumes no input. It is never part of
// the alphabet.
const Epsilon Symbol = 'e'

// StateID is a stable handle for a state inside one automaton.
// Handles are dense and assigned in insertion order.
type StateID int

// state is a node of the arena. Edges reference other nodes by handle.
type state struct {
	name        string
	transitions map[Symbol]StateSet
}

func newState(name string) *state {
	return &state{
		name:        name,
		transitions: make(map[Symbol]StateSet),
	}
}

func (s *state) addTransition(sym Symbol, to StateID) {
	dest, ok := s.transitions[sym]
	if !ok {
		dest = NewStateSet()
		s.transitions[sym] = dest
	}
	dest.Add(to)
}

// destinations returns the stored set; callers must not mutate it.
func (s *state) destinations(sym Symbol) StateSet {
	return s.transitions[sym]
}
