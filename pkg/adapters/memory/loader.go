package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aretw0/nfa/pkg/domain"
)

// Loader serves raw documents (JSON or YAML) from memory. Documents are kept
// verbatim so malformed input reaches the parser unchanged, which is what the
// validator tests rely on. The set is fixed at construction.
type Loader struct {
	docs  map[string][]byte
	names []string
}

// NewLoader serves each document under its map key.
func NewLoader(docs map[string]string) *Loader {
	l := &Loader{
		docs:  make(map[string][]byte, len(docs)),
		names: make([]string, 0, len(docs)),
	}
	for name, doc := range docs {
		l.docs[name] = []byte(doc)
		l.names = append(l.names, name)
	}
	slices.Sort(l.names)
	return l
}

// NewFromDefinitions encodes each definition as JSON and serves it under its
// own name. Unnamed and duplicate definitions are rejected.
func NewFromDefinitions(defs ...*domain.Definition) (*Loader, error) {
	docs := make(map[string]string, len(defs))
	for i, def := range defs {
		if def == nil || def.Name == "" {
			return nil, fmt.Errorf("%w: definition %d missing name", domain.ErrInvalidDefinition, i)
		}
		if _, dup := docs[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate definition %s", domain.ErrInvalidDefinition, def.Name)
		}
		raw, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition %s: %w", def.Name, err)
		}
		docs[def.Name] = string(raw)
	}
	return NewLoader(docs), nil
}

// GetAutomaton returns a copy of the document served under name.
func (l *Loader) GetAutomaton(name string) ([]byte, error) {
	raw, ok := l.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, name)
	}
	return bytes.Clone(raw), nil
}

// ListAutomata returns the served names in sorted order.
func (l *Loader) ListAutomata() ([]string, error) {
	return slices.Clone(l.names), nil
}
