package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/internal/presentation/graph"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/aretw0/nfa/internal/validator"
	"github.com/aretw0/nfa/pkg/codegen"
)

// ErrFailedCheck marks a command that ran fine but whose verdict was
// negative, so callers can exit non-zero without printing an error.
var ErrFailedCheck = errors.New("check failed")

// Printer writes command results. Render, when set, turns markdown into
// terminal output.
type Printer struct {
	Out    io.Writer
	Render func(string) (string, error)
}

func (p Printer) markdown(md string) error {
	if p.Render != nil {
		rendered, err := p.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
		md = rendered
	}
	_, err := io.WriteString(p.Out, md)
	return err
}

// Accepts prints one verdict per input and fails the check if any is rejected.
func Accepts(ctx context.Context, eng *nfa.Engine, p Printer, name string, inputs []string) error {
	rejected := 0
	for _, input := range inputs {
		ok, err := eng.Accepts(ctx, name, input)
		if err != nil {
			return err
		}
		verdict := "accept"
		if !ok {
			verdict = "reject"
			rejected++
		}
		fmt.Fprintf(p.Out, "%s\t%q\n", verdict, input)
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d inputs rejected", ErrFailedCheck, rejected, len(inputs))
	}
	return nil
}

// Session answers one input per line read from in until EOF, "exit" or an
// interrupt.
func Session(ctx context.Context, eng *nfa.Engine, in io.Reader, p Printer, name string, headless bool) error {
	r := nfa.NewRunner()
	r.Input = NewInterruptibleReader(in, ctx.Done())
	r.Output = p.Out
	r.Headless = headless
	r.Renderer = p.Render
	return handleExecutionError(r.Run(ctx, eng, name))
}

// Copies prints the peak number of simultaneously active states per input.
func Copies(ctx context.Context, eng *nfa.Engine, p Printer, name string, inputs []string) error {
	for _, input := range inputs {
		n, err := eng.MaxCopies(ctx, name, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Out, "%d\t%q\n", n, input)
	}
	return nil
}

// Check reports whether the automaton is deterministic.
func Check(ctx context.Context, eng *nfa.Engine, p Printer, name string) error {
	det, err := eng.IsDeterministic(ctx, name)
	if err != nil {
		return err
	}
	verdict := "nondeterministic"
	if det {
		verdict = "deterministic"
	}
	fmt.Fprintf(p.Out, "%s: %s\n", name, verdict)
	return nil
}

// Trace prints the active set after every consumed symbol.
func Trace(ctx context.Context, eng *nfa.Engine, p Printer, name, input string) error {
	tr, err := eng.Trace(ctx, name, input)
	if err != nil {
		return err
	}
	return p.markdown(tui.TraceMarkdown(name, input, tr))
}

// Graph prints a Mermaid diagram, highlighting the run on input when given.
func Graph(ctx context.Context, eng *nfa.Engine, p Printer, name string, input *string) error {
	a, err := eng.Automaton(ctx, name)
	if err != nil {
		return err
	}
	var overlay *graph.GraphOverlay
	if input != nil {
		tr, err := eng.Trace(ctx, name, *input)
		if err != nil {
			return err
		}
		overlay = graph.TraceOverlay(tr)
	}
	_, err = io.WriteString(p.Out, graph.GenerateMermaid(a, overlay))
	return err
}

// Validate prints a structural report for the named automata, or all of them.
func Validate(eng *nfa.Engine, p Printer, names []string) error {
	reports, err := validator.Validate(eng.Loader(), compiler.NewParser(), names...)
	if err != nil {
		return err
	}
	if err := p.markdown(tui.ReportMarkdown(reports)); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d automata have problems", ErrFailedCheck, failed, len(reports))
	}
	return nil
}

// Inspect describes one automaton.
func Inspect(ctx context.Context, eng *nfa.Engine, p Printer, name string) error {
	def, err := eng.Definition(ctx, name)
	if err != nil {
		return err
	}
	a, err := eng.Automaton(ctx, name)
	if err != nil {
		return err
	}
	return p.markdown(tui.DefinitionMarkdown(def, a))
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	Package    string
	Identifier string // defaults to codegen.Identifier(name)
	OutFile    string // stdout when empty
}

// Generate writes a standalone Go matcher for the automaton.
func Generate(ctx context.Context, eng *nfa.Engine, p Printer, name string, opts GenerateOptions) error {
	a, err := eng.Automaton(ctx, name)
	if err != nil {
		return err
	}
	ident := opts.Identifier
	if ident == "" {
		ident = codegen.Identifier(name)
	}

	code, err := codegen.Generate(a, codegen.Config{
		Package: opts.Package,
		Name:    ident,
		Source:  name,
	})
	if err != nil {
		return err
	}

	if opts.OutFile == "" {
		_, err = p.Out.Write(code)
		return err
	}
	if err := os.WriteFile(opts.OutFile, code, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.OutFile, err)
	}
	printSystemMessage(p.Out, "Wrote %s", opts.OutFile)
	return nil
}

// Register parses definition files and saves them through the engine's store.
func Register(ctx context.Context, eng *nfa.Engine, p Printer, paths []string) error {
	parser := compiler.NewParser()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		def, err := parser.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if err := eng.Register(ctx, def); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		printSystemMessage(p.Out, "Registered '%s'", def.Name)
	}
	return nil
}
