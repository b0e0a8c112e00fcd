package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/domain"
)

func TestValidate(t *testing.T) {
	parser := compiler.NewParser()

	// Scenario A: clean automaton.
	// Scenario B: q3 unreachable, q2 dead, symbol 'c' unused.
	loader := memory.NewLoader(map[string]string{
		"clean": `{
			"name": "clean",
			"alphabet": ["a", "b"],
			"states": ["q0", "q1"],
			"start": "q0",
			"final": ["q1"],
			"transitions": [
				{"from": "q0", "on": "a", "to": ["q1"]},
				{"from": "q1", "on": "b", "to": ["q0"]}
			]
		}`,
		"messy": `
name: messy
alphabet: [a, b, c]
states: [q0, q1, q2, q3]
start: q0
final: [q1]
transitions:
  - {from: q0, on: a, to: [q1, q2]}
  - {from: q2, on: b, to: [q2]}
  - {from: q3, on: e, to: [q1]}
`,
	})

	reports, err := Validate(loader, parser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	clean := reports[0]
	if clean.Name != "clean" || !clean.OK() {
		t.Errorf("Scenario A should be clean, got %+v", clean)
	}
	if !clean.Deterministic {
		t.Error("Scenario A is a complete DFA")
	}

	messy := reports[1]
	if messy.OK() {
		t.Fatal("Scenario B should report problems")
	}
	if strings.Join(messy.Unreachable, ",") != "q3" {
		t.Errorf("unreachable = %v", messy.Unreachable)
	}
	if strings.Join(messy.Dead, ",") != "q2" {
		t.Errorf("dead = %v", messy.Dead)
	}
	if strings.Join(messy.UnusedSymbols, ",") != "c" {
		t.Errorf("unused symbols = %v", messy.UnusedSymbols)
	}
	if messy.Deterministic {
		t.Error("Scenario B has an epsilon edge")
	}
}

func TestValidate_RejectedCallsAndMissing(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"broken": `{
			"name": "broken",
			"alphabet": ["a"],
			"states": ["s"],
			"transitions": [{"from": "s", "on": "a", "to": ["ghost"]}]
		}`,
		"garbage": `{"name": `,
	})

	reports, err := Validate(loader, compiler.NewParser(), "broken", "garbage", "nope")
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected not-found error naming 'nope', got %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	broken := reports[0]
	if len(broken.Rejected) != 1 || !strings.Contains(broken.Rejected[0], "ghost") {
		t.Errorf("rejected = %v", broken.Rejected)
	}
	if !broken.NoStart || !broken.NoFinal {
		t.Errorf("expected missing start and final flags, got %+v", broken)
	}

	if len(reports[1].Rejected) == 0 {
		t.Error("parse failure should be reported")
	}
}

func TestValidateDefinition_EmptyAutomaton(t *testing.T) {
	report := ValidateDefinition(&domain.Definition{Name: "empty"})
	if report.Name != "empty" || !report.NoStart || !report.Deterministic {
		t.Errorf("unexpected report %+v", report)
	}
}
