/*
Package nfa is a nondeterministic finite automaton engine with epsilon transitions.

Automata are described in YAML, JSON or Markdown frontmatter, or built in code
with package dsl. The engine answers three questions about them: whether an
input string is accepted, how many states are active at once while reading it,
and whether the automaton is already deterministic.

# Concept

An automaton is built from discrete construction calls (add a state, add a
symbol, pick the start, mark final states, add transitions). Each call either
succeeds or returns false without changing anything. Once built, an automaton
is read-only and can be queried from many goroutines.

Simulation keeps the set of active states, closes it under epsilon moves
after every symbol and accepts when a final state survives the whole input.
The symbol 'e' is reserved for epsilon edges and can never be an input symbol.

# Usage

The Engine resolves automata by name from a loader. By default it reads a
folder of definition documents through Loam:

	eng, err := nfa.New("./automata")
	if err != nil {
		log.Fatal(err)
	}

	ok, err := eng.Accepts(ctx, "ends-with-01", "1101")
	width, err := eng.MaxCopies(ctx, "ends-with-01", "0101")

A definition document looks like this:

	---
	name: ends-with-01
	alphabet: [0, 1]
	states: [q0, q1, q2]
	start: q0
	final: [q2]
	transitions:
	  - {from: q0, on: 0, to: [q0, q1]}
	  - {from: q0, on: 1, to: [q0]}
	  - {from: q1, on: 1, to: [q2]}
	---
	Binary strings ending in 01.

For lower level work use package automaton directly.
*/
package nfa
