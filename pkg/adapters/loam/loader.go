package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/nfa/pkg/domain"
)

// Loader adapts the Loam library to the ports.AutomatonLoader interface.
// Every document in the repository describes one automaton: the frontmatter
// carries the definition and the body is its description.
type Loader struct {
	Repo *loam.TypedRepository[Metadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[Metadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetAutomaton retrieves a document and re-encodes it as a JSON definition.
func (l *Loader) GetAutomaton(name string) ([]byte, error) {
	ctx := context.Background()

	doc, err := l.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	def := toDefinition(doc.ID, doc.Data, doc.Content)

	bytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}
	return bytes, nil
}

// resolve finds the document served under name, the same name ListAutomata
// reports. Files without a frontmatter name are found by ID; renamed ones
// through the listing.
func (l *Loader) resolve(ctx context.Context, name string) (*loam.DocumentModel[Metadata], error) {
	if doc, err := l.Repo.Get(ctx, name); err == nil && documentName(doc.ID, doc.Data) == name {
		return doc, nil
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loam list failed for %s: %v", domain.ErrAutomatonNotFound, name, err)
	}
	for _, doc := range docs {
		if documentName(doc.ID, doc.Data) != name {
			continue
		}
		// Listed documents may carry metadata only; fetch the body too.
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			// Loam does not expose a typed miss; every lookup failure is a miss here.
			return nil, fmt.Errorf("%w: loam get failed for %s: %v", domain.ErrAutomatonNotFound, name, err)
		}
		return full, nil
	}
	return nil, fmt.Errorf("%w: no document named %s", domain.ErrAutomatonNotFound, name)
}

// ListAutomata lists all automata in the repository.
func (l *Loader) ListAutomata() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := documentName(doc.ID, doc.Data)

		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: automaton '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func toDefinition(docID string, meta Metadata, content string) *domain.Definition {
	def := &domain.Definition{
		Name:        documentName(docID, meta),
		Description: meta.Description,
		States:      meta.States,
		Start:       meta.Start,
		Final:       meta.Final,
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}

	for _, sym := range meta.Alphabet {
		def.Alphabet = append(def.Alphabet, fmt.Sprint(sym))
	}

	for _, lt := range meta.Transitions {
		on := ""
		if lt.On != nil {
			on = fmt.Sprint(lt.On)
		}
		def.Transitions = append(def.Transitions, domain.Transition{
			From: lt.From,
			On:   on,
			To:   lt.To,
		})
	}
	return def
}

// documentName prefers the frontmatter name and falls back to the file name.
func documentName(docID string, meta Metadata) string {
	if meta.Name != "" {
		return trimExtension(meta.Name)
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
