package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfa/pkg/automaton"
)

// GraphOverlay contains simulation data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	ActiveStates  []string
}

// GenerateMermaid produces a Mermaid flowchart for an automaton.
// It applies semantic styling:
// - Final: (((Double circle)))
// - Start: ((Circle)), with an entry arrow
// - Default: [Rectangle]
// Edges between the same pair of states are merged into one labelled arrow,
// and epsilon edges are dotted and labelled ε.
// It also applies overlay styles (Visited/Active) if provided.
func GenerateMermaid(a *automaton.NFA, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if start, ok := a.Start(); ok {
		sb.WriteString("    __start(( )) --> " + sanitizeMermaidID(a.Name(start)) + "\n")
	}

	for _, name := range a.States() {
		safeID := sanitizeMermaidID(name)

		opener, closer := "[", "]"
		switch {
		case a.IsFinal(name):
			opener, closer = "(((", ")))"
		case a.IsStart(name):
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(name), closer))
	}

	for _, name := range a.States() {
		id, _ := a.State(name)
		safeID := sanitizeMermaidID(name)

		labels := make(map[automaton.StateID][]string)
		epsilon := automaton.NewStateSet()
		for _, sym := range a.Symbols(id) {
			dest := a.Destinations(id, sym)
			if sym == automaton.Epsilon {
				epsilon.AddAll(dest)
				continue
			}
			for to := range dest {
				labels[to] = append(labels[to], escapeLabel(string(sym)))
			}
		}

		targets := automaton.NewStateSet()
		for to := range labels {
			targets.Add(to)
		}
		for _, to := range targets.Sorted() {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, strings.Join(labels[to], ","), sanitizeMermaidID(a.Name(to))))
		}
		for _, to := range epsilon.Sorted() {
			sb.WriteString(fmt.Sprintf("    %s -. \"ε\" .-> %s\n", safeID, sanitizeMermaidID(a.Name(to))))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		writeClass(&sb, a, overlay.VisitedStates, "visited")
		writeClass(&sb, a, overlay.ActiveStates, "active")
	}

	return sb.String()
}

// writeClass styles each known state once; unknown names are skipped.
func writeClass(sb *strings.Builder, a *automaton.NFA, names []string, class string) {
	seen := make(map[string]bool)
	for _, name := range names {
		if _, ok := a.State(name); !ok || seen[name] {
			continue
		}
		seen[name] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(name), class))
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// TraceOverlay marks every state a trace passed through, and the states
// still active when it ended.
func TraceOverlay(tr *automaton.Trace) *GraphOverlay {
	overlay := &GraphOverlay{VisitedStates: append([]string(nil), tr.Initial...)}
	last := tr.Initial
	for _, step := range tr.Steps {
		overlay.VisitedStates = append(overlay.VisitedStates, step.Active...)
		last = step.Active
	}
	overlay.ActiveStates = last
	return overlay
}
