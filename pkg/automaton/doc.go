/*
Package automaton implements a nondeterministic finite automaton over runes.

States live in an arena and are addressed by StateID handles; each state maps
a Symbol to the set of destination handles, so a (state, symbol) pair may lead
nowhere, to one state, or to many. The reserved Epsilon symbol labels edges
that consume no input.

Simulation tracks every state the automaton could be in at once (the active
set) instead of backtracking, which bounds a query by the input length times
the number of states:

	a := automaton.New()
	a.AddState("q0")
	a.AddState("q1")
	a.AddSymbol('0')
	a.SetStart("q0")
	a.SetFinal("q1")
	a.AddTransition("q0", []string{"q0", "q1"}, '0')

	a.Accepts("00")    // true
	a.MaxCopies("00")  // 2
	a.IsDeterministic() // false
*/
package automaton
