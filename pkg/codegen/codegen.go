// Package codegen emits standalone Go matchers for built automata.
//
// The generated file has no dependency on this module: the epsilon closure of
// every state and the transition relation are baked into tables, and a short
// simulation loop walks them.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Package string // package clause of the generated file
	Name    string // exported prefix of the generated identifiers
	Source  string // automaton name, recorded in the header comment
}

// Generate renders a matcher for a.
// It declares <Name>Accepts, <Name>MaxCopies and the <Name>Deterministic constant.
func Generate(a *automaton.NFA, cfg Config) ([]byte, error) {
	if cfg.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if !isIdentifier(cfg.Name) {
		return nil, fmt.Errorf("invalid identifier %q", cfg.Name)
	}

	g := &generator{
		nfa:      a,
		exported: cfg.Name,
		internal: lowerFirst(cfg.Name),
		file:     jen.NewFile(cfg.Package),
	}

	source := cfg.Source
	if source == "" {
		source = cfg.Name
	}
	g.file.HeaderComment("Code generated by nfa generate; DO NOT EDIT.")
	g.file.PackageComment(fmt.Sprintf("Matcher for automaton %q.", source))

	g.tables()
	g.runner()
	g.queries()

	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render code: %w", err)
	}
	return buf.Bytes(), nil
}

// Identifier turns an automaton name such as "ends-with-01" into an exported
// Go identifier ("EndsWith01").
func Identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	id := b.String()
	if id == "" || !unicode.IsLetter([]rune(id)[0]) {
		id = "NFA" + id
	}
	return id
}

// lowerFirst lower-cases the first rune, which may span several bytes.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

type generator struct {
	nfa      *automaton.NFA
	exported string
	internal string
	file     *jen.File
}

func (g *generator) id(suffix string) string {
	return g.internal + suffix
}

func ints(ids []automaton.StateID) jen.Code {
	values := make([]jen.Code, len(ids))
	for i, id := range ids {
		values[i] = jen.Lit(int(id))
	}
	return jen.Values(values...)
}

// tables emits the closure, delta, final and alphabet tables.
// States are indexed by their handle, which follows insertion order.
func (g *generator) tables() {
	a := g.nfa
	names := a.States()

	closures := make([]jen.Code, len(names))
	deltas := make([]jen.Code, len(names))
	finals := make([]jen.Code, len(names))

	for i, name := range names {
		id, _ := a.State(name)
		closures[i] = ints(a.EpsilonClosure(id).Sorted())
		finals[i] = jen.Lit(a.IsFinal(name))

		row := jen.Dict{}
		for _, sym := range a.Symbols(id) {
			if sym == automaton.Epsilon {
				continue
			}
			row[jen.LitRune(sym)] = ints(a.Destinations(id, sym).Sorted())
		}
		deltas[i] = jen.Values(row)
	}

	alphabet := jen.Dict{}
	for _, sym := range a.Alphabet() {
		alphabet[jen.LitRune(sym)] = jen.True()
	}

	start := -1
	if id, ok := a.Start(); ok {
		start = int(id)
	}

	g.file.Comment(fmt.Sprintf("States in table order: %s.", strings.Join(names, ", ")))
	g.file.Var().Defs(
		jen.Id(g.id("Start")).Op("=").Lit(start),
		jen.Id(g.id("Closure")).Op("=").Index().Index().Int().Values(closures...),
		jen.Id(g.id("Delta")).Op("=").Index().Map(jen.Rune()).Index().Int().Values(deltas...),
		jen.Id(g.id("Final")).Op("=").Index().Bool().Values(finals...),
		jen.Id(g.id("Alphabet")).Op("=").Map(jen.Rune()).Bool().Values(alphabet),
	)

	g.file.Comment(fmt.Sprintf("%sDeterministic reports whether the automaton is a DFA.", g.exported))
	g.file.Const().Id(g.exported + "Deterministic").Op("=").Lit(a.IsDeterministic())
}

// runner emits the shared simulation loop.
func (g *generator) runner() {
	closure, delta := g.id("Closure"), g.id("Delta")
	visit := jen.If(jen.Id("visit").Op("!=").Nil()).Block(
		jen.Id("visit").Call(jen.Len(jen.Id("active"))),
	)

	g.file.Func().Id(g.id("Run")).Params(
		jen.Id("input").String(),
		jen.Id("visit").Func().Params(jen.Int()),
	).Params(jen.Map(jen.Int()).Bool(), jen.Bool()).Block(
		jen.If(jen.Id(g.id("Start")).Op("<").Lit(0)).Block(
			jen.Return(jen.Nil(), jen.False()),
		),
		jen.Id("active").Op(":=").Map(jen.Int()).Bool().Values(),
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id(closure).Index(jen.Id(g.id("Start")))).Block(
			jen.Id("active").Index(jen.Id("s")).Op("=").True(),
		),
		visit,
		jen.For(jen.List(jen.Id("_"), jen.Id("r")).Op(":=").Range().Id("input")).Block(
			jen.If(jen.Op("!").Id(g.id("Alphabet")).Index(jen.Id("r"))).Block(
				jen.Return(jen.Id("active"), jen.False()),
			),
			jen.Id("next").Op(":=").Map(jen.Int()).Bool().Values(),
			jen.For(jen.Id("s").Op(":=").Range().Id("active")).Block(
				jen.For(jen.List(jen.Id("_"), jen.Id("d")).Op(":=").Range().Id(delta).Index(jen.Id("s")).Index(jen.Id("r"))).Block(
					jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id(closure).Index(jen.Id("d"))).Block(
						jen.Id("next").Index(jen.Id("c")).Op("=").True(),
					),
				),
			),
			jen.Id("active").Op("=").Id("next"),
			visit,
		),
		jen.Return(jen.Id("active"), jen.True()),
	)
}

// queries emits the exported entry points.
func (g *generator) queries() {
	g.file.Comment(fmt.Sprintf("%sAccepts reports whether input is in the language.", g.exported))
	g.file.Func().Id(g.exported+"Accepts").Params(jen.Id("input").String()).Bool().Block(
		jen.List(jen.Id("active"), jen.Id("ok")).Op(":=").Id(g.id("Run")).Call(jen.Id("input"), jen.Nil()),
		jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.False())),
		jen.For(jen.Id("s").Op(":=").Range().Id("active")).Block(
			jen.If(jen.Id(g.id("Final")).Index(jen.Id("s"))).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)

	g.file.Comment(fmt.Sprintf("%sMaxCopies returns the peak number of active states while reading input.", g.exported))
	g.file.Func().Id(g.exported+"MaxCopies").Params(jen.Id("input").String()).Int().Block(
		jen.Id("peak").Op(":=").Lit(0),
		jen.Id(g.id("Run")).Call(
			jen.Id("input"),
			jen.Func().Params(jen.Id("n").Int()).Block(
				jen.If(jen.Id("n").Op(">").Id("peak")).Block(jen.Id("peak").Op("=").Id("n")),
			),
		),
		jen.Return(jen.Id("peak")),
	)
}
