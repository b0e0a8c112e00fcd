/*
Package domain contains the serializable models shared by the nfa engine and
its adapters.

It is kept free of I/O so that loaders, stores and transports can all speak
the same types.

# Key Entities

  - Definition: the declarative form of an automaton (alphabet, states, start,
    final states, transitions).
  - Transition: one labelled edge set; the "e" label (or "ε") means epsilon.
  - QueryEvent / CompileEvent: payloads for LifecycleHooks.
*/
package domain
