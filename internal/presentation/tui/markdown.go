package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfa/internal/validator"
	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
)

// DefinitionMarkdown describes an automaton for `nfa inspect`.
func DefinitionMarkdown(def *domain.Definition, a *automaton.NFA) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", def.Description)
	}

	symbols := make([]string, 0, len(a.Alphabet()))
	for _, sym := range a.Alphabet() {
		symbols = append(symbols, fmt.Sprintf("`%c`", sym))
	}
	start := "_none_"
	if id, ok := a.Start(); ok {
		start = a.Name(id)
	}

	fmt.Fprintf(&sb, "- **States**: %s\n", strings.Join(a.States(), ", "))
	fmt.Fprintf(&sb, "- **Alphabet**: %s\n", strings.Join(symbols, " "))
	fmt.Fprintf(&sb, "- **Start**: %s\n", start)
	fmt.Fprintf(&sb, "- **Final**: %s\n", strings.Join(a.Finals(), ", "))
	fmt.Fprintf(&sb, "- **Deterministic**: %t\n\n", a.IsDeterministic())

	sb.WriteString("| From | On | To |\n|---|---|---|\n")
	for _, name := range a.States() {
		id, _ := a.State(name)
		for _, sym := range a.Symbols(id) {
			label := string(sym)
			if sym == automaton.Epsilon {
				label = domain.EpsilonAlias
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", name, label, strings.Join(a.Names(a.Destinations(id, sym)), ", "))
		}
	}
	return sb.String()
}

// TraceMarkdown lists the active set after every consumed symbol.
func TraceMarkdown(name, input string, tr *automaton.Trace) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Trace of %q on %s\n\n", input, name)
	sb.WriteString("| Step | Symbol | Active |\n|---|---|---|\n")
	fmt.Fprintf(&sb, "| 0 | | %s |\n", set(tr.Initial))
	for i, step := range tr.Steps {
		fmt.Fprintf(&sb, "| %d | `%c` | %s |\n", i+1, step.Symbol, set(step.Active))
	}
	sb.WriteString("\n")

	if tr.Halted {
		fmt.Fprintf(&sb, "Halted at offset %d: symbol not in alphabet.\n\n", tr.HaltedAt)
	}
	verdict := "rejected"
	if tr.Accepted {
		verdict = "accepted"
	}
	fmt.Fprintf(&sb, "**Result**: %s, max copies %d\n", verdict, tr.MaxCopies)
	return sb.String()
}

// ReportMarkdown summarizes validation reports.
func ReportMarkdown(reports []*validator.Report) string {
	var sb strings.Builder
	for _, r := range reports {
		status := "ok"
		if !r.OK() {
			status = "problems found"
		}
		fmt.Fprintf(&sb, "## %s: %s\n\n", r.Name, status)

		for _, msg := range r.Rejected {
			fmt.Fprintf(&sb, "- rejected: %s\n", strings.TrimSpace(msg))
		}
		if r.NoStart {
			sb.WriteString("- no start state\n")
		}
		if r.NoFinal {
			sb.WriteString("- no final state\n")
		}
		if len(r.Unreachable) > 0 {
			fmt.Fprintf(&sb, "- unreachable: %s\n", strings.Join(r.Unreachable, ", "))
		}
		if len(r.Dead) > 0 {
			fmt.Fprintf(&sb, "- dead: %s\n", strings.Join(r.Dead, ", "))
		}
		if len(r.UnusedSymbols) > 0 {
			fmt.Fprintf(&sb, "- unused symbols: %s\n", strings.Join(r.UnusedSymbols, ", "))
		}
		fmt.Fprintf(&sb, "- deterministic: %t\n\n", r.Deterministic)
	}
	return sb.String()
}

func set(names []string) string {
	if len(names) == 0 {
		return "∅"
	}
	return "{" + strings.Join(names, ", ") + "}"
}
