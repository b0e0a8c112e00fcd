package ports

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
)

// DefinitionStore defines the interface for persisting automaton definitions.
// It is what makes an engine writable: the HTTP adapter and `nfa register`
// save new automata through it.
type DefinitionStore interface {
	// Save persists def under def.Name, replacing any previous version.
	Save(ctx context.Context, def *domain.Definition) error

	// Load retrieves the definition stored under name.
	// Returns domain.ErrAutomatonNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// Delete removes the definition stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the stored names.
	List(ctx context.Context) ([]string, error)
}
