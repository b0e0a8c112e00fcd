package ports

// AutomatonLoader defines how the engine retrieves automaton definitions.
// This allows the storage layer (Loam, Redis, Memory) to be decoupled.
type AutomatonLoader interface {
	// GetAutomaton retrieves the raw definition (JSON or YAML) stored under name.
	// Implementations wrap domain.ErrAutomatonNotFound when the name is unknown.
	GetAutomaton(name string) ([]byte, error)

	// ListAutomata returns the names of all available definitions in sorted order.
	ListAutomata() ([]string, error)
}
