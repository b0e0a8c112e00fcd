package tests

import (
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
)

// AutomatonLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.AutomatonLoader. expected maps each name the loader must
// serve to the definition its raw bytes must parse into.
func AutomatonLoaderContractTest(t *testing.T, loader ports.AutomatonLoader, expected map[string]*domain.Definition) {
	t.Helper()
	parser := compiler.NewParser()

	t.Run("GetAutomaton_Success", func(t *testing.T) {
		for name, want := range expected {
			raw, err := loader.GetAutomaton(name)
			if err != nil {
				t.Fatalf("unexpected error getting automaton %s: %v", name, err)
			}
			got, err := parser.Parse(raw)
			if err != nil {
				t.Fatalf("definition %s does not parse: %v", name, err)
			}
			if got.Name != want.Name {
				t.Errorf("name mismatch for %s: got %q, want %q", name, got.Name, want.Name)
			}
			if len(got.States) != len(want.States) || len(got.Transitions) != len(want.Transitions) {
				t.Errorf("content mismatch for %s: got %+v, want %+v", name, got, want)
			}
		}
	})

	t.Run("GetAutomaton_NotFound", func(t *testing.T) {
		_, err := loader.GetAutomaton("non-existent-automaton")
		if err == nil {
			t.Fatal("expected error for non-existent automaton, got nil")
		}
		if !errors.Is(err, domain.ErrAutomatonNotFound) {
			t.Errorf("expected ErrAutomatonNotFound, got %v", err)
		}
	})

	t.Run("ListAutomata", func(t *testing.T) {
		names, err := loader.ListAutomata()
		if err != nil {
			t.Fatalf("unexpected error listing automata: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d automata, got %d", len(expected), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("automaton %s missing from list", name)
			}
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
	})

	t.Run("ListAutomata_Fetchable", func(t *testing.T) {
		names, err := loader.ListAutomata()
		if err != nil {
			t.Fatalf("unexpected error listing automata: %v", err)
		}
		for _, name := range names {
			raw, err := loader.GetAutomaton(name)
			if err != nil {
				t.Errorf("listed automaton %s cannot be fetched: %v", name, err)
				continue
			}
			got, err := parser.Parse(raw)
			if err != nil {
				t.Errorf("listed automaton %s does not parse: %v", name, err)
				continue
			}
			if got.Name != name {
				t.Errorf("listed automaton %s loads as %q", name, got.Name)
			}
		}
	})
}
