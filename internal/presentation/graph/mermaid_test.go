package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/nfa/internal/presentation/graph"
	"github.com/aretw0/nfa/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	b := dsl.New("example")
	b.Add("q-0").Start().
		On("0", "q-0", "q1").
		On("1", "q-0").
		Epsilon("q1")
	b.Add("q1").Final()
	b.Add("dead.end")

	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				"graph LR",
				"__start(( )) --> q_0",
				`q_0(("q-0"))`,
				`q1((("q1")))`,
				`dead_end["dead.end"]`,
			},
		},
		{
			name: "Merged Labels",
			contains: []string{
				`q_0 -- "0,1" --> q_0`,
				`q_0 -- "0" --> q1`,
				`q_0 -. "ε" .-> q1`,
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				VisitedStates: []string{"q-0", "q-0", "ghost"},
				ActiveStates:  []string{"q1"},
			},
			contains: []string{
				"classDef active",
				"class q_0 visited;",
				"class q1 active;",
			},
			excludes: []string{"ghost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(a, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
			if strings.Count(got, "class q_0 visited;") > 1 {
				t.Error("visited states must be deduplicated")
			}
		})
	}
}

func TestTraceOverlay(t *testing.T) {
	b := dsl.New("ends-with-01")
	b.Add("q0").Start().On("0", "q0", "q1").On("1", "q0")
	b.Add("q1").On("1", "q2")
	b.Add("q2").Final()

	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	tr := a.Trace("01")
	overlay := graph.TraceOverlay(&tr)
	if got := strings.Join(overlay.ActiveStates, ","); got != "q0,q2" {
		t.Errorf("ActiveStates = %s, want q0,q2", got)
	}
	if got := strings.Join(overlay.VisitedStates, ","); got != "q0,q0,q1,q0,q2" {
		t.Errorf("VisitedStates = %s", got)
	}

	out := graph.GenerateMermaid(a, overlay)
	if !strings.Contains(out, "class q1 visited;") || !strings.Contains(out, "class q2 active;") {
		t.Errorf("overlay classes missing:\n%s", out)
	}
}
