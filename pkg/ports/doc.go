/*
Package ports defines the driven ports (interfaces) for the nfa engine.

These interfaces decouple the engine from where definitions live, so the same
automaton can be served from a markdown repository, a Redis instance, or memory.

# Key Interfaces

  - AutomatonLoader: read-only access to raw definitions by name.
  - DefinitionStore: read-write persistence of parsed definitions.

RunDefinitionStoreContract and tests.AutomatonLoaderContractTest verify adapters.
*/
package ports
