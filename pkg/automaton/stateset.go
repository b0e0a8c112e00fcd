package automaton

import "sort"

// StateSet is a set of state handles. The zero value is not usable; build
// sets with NewStateSet.
type StateSet map[StateID]struct{}

// NewStateSet creates a set holding the given states.
func NewStateSet(ids ...StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s StateSet) Add(id StateID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is in the set.
func (s StateSet) Has(id StateID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the cardinality.
func (s StateSet) Len() int {
	return len(s)
}

// AddAll merges other into s.
func (s StateSet) AddAll(other StateSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// Sorted returns the members in ascending handle order, which is the order
// the states were added to the automaton.
func (s StateSet) Sorted() []StateID {
	ids := make([]StateID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy.
func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	c.AddAll(s)
	return c
}
