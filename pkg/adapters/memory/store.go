package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/nfa/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// It also satisfies ports.AutomatonLoader, so an engine can read what was
// registered. Safe for concurrent use.
type Store struct {
	data map[string]*domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Definition),
	}
}

// Save persists a copy of def.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("%w: definition missing name", domain.ErrInvalidDefinition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = def.Clone()
	return nil
}

// Load retrieves a copy of the stored definition.
func (s *Store) Load(ctx context.Context, name string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetAutomaton implements ports.AutomatonLoader.
func (s *Store) GetAutomaton(name string) ([]byte, error) {
	def, err := s.Load(context.Background(), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	return json.Marshal(def)
}

// ListAutomata implements ports.AutomatonLoader.
func (s *Store) ListAutomata() ([]string, error) {
	return s.List(context.Background())
}
