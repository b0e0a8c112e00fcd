package dsl

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/nfa/pkg/domain"
)

func endsWith01() *Builder {
	b := New("ends-with-01").Describe("binary strings ending in 01")

	b.Add("q0").Start().
		On("0", "q0", "q1").
		On("1", "q0")
	b.Add("q1").On("1", "q2")
	b.Add("q2").Final()
	return b
}

func TestBuilder_Definition(t *testing.T) {
	def := endsWith01().Definition()

	if def.Name != "ends-with-01" {
		t.Errorf("Expected name 'ends-with-01', got '%s'", def.Name)
	}
	if len(def.States) != 3 || def.States[0] != "q0" || def.States[2] != "q2" {
		t.Errorf("Unexpected state order %v", def.States)
	}
	if len(def.Alphabet) != 2 || def.Alphabet[0] != "0" || def.Alphabet[1] != "1" {
		t.Errorf("Alphabet should be collected from edges, got %v", def.Alphabet)
	}
	if def.Start != "q0" {
		t.Errorf("Expected start 'q0', got '%s'", def.Start)
	}
	if len(def.Final) != 1 || def.Final[0] != "q2" {
		t.Errorf("Unexpected finals %v", def.Final)
	}
	if len(def.Transitions) != 3 {
		t.Fatalf("Expected 3 transitions, got %d", len(def.Transitions))
	}
	if def.Transitions[0].From != "q0" || len(def.Transitions[0].To) != 2 {
		t.Errorf("Unexpected first transition %+v", def.Transitions[0])
	}
}

func TestBuilder_Build(t *testing.T) {
	a, err := endsWith01().Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if !a.Accepts("1101") {
		t.Error("expected 1101 to be accepted")
	}
	if a.Accepts("110") {
		t.Error("expected 110 to be rejected")
	}
	if got := a.MaxCopies("0"); got != 2 {
		t.Errorf("MaxCopies(0) = %d, want 2", got)
	}
}

func TestBuilder_EpsilonAndStartReplacement(t *testing.T) {
	b := New("eps")
	b.Add("a").Start().Epsilon("b")
	b.Add("b").Start().Final()
	b.Add("a").Start() // Add returns the existing state

	def := b.Definition()
	if def.Start != "a" {
		t.Errorf("last Start() call should win, got '%s'", def.Start)
	}
	if len(def.Alphabet) != 0 {
		t.Errorf("epsilon must not join the alphabet, got %v", def.Alphabet)
	}
	if !def.Transitions[0].IsEpsilon() {
		t.Error("expected epsilon transition")
	}

	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if !a.Accepts("") {
		t.Error("empty input reaches b through epsilon")
	}
}

func TestBuilder_BuildReportsUnknownTargets(t *testing.T) {
	b := New("broken")
	b.Add("a").Start().On("x", "ghost")

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for unknown destination")
	}
}

func TestBuilder_Loader(t *testing.T) {
	loader, err := endsWith01().Loader()
	if err != nil {
		t.Fatalf("Loader() failed: %v", err)
	}

	raw, err := loader.GetAutomaton("ends-with-01")
	if err != nil {
		t.Fatalf("GetAutomaton failed: %v", err)
	}

	var def domain.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		t.Fatalf("Failed to unmarshal definition: %v", err)
	}
	if def.Description != "binary strings ending in 01" {
		t.Errorf("Unexpected description '%s'", def.Description)
	}
}
