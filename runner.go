package nfa

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Runner feeds lines from Input to one automaton and writes a verdict per line.
// This allows for easy testing and integration with different frontends (CLI, pipes).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run reads inputs until EOF and reports, for each, whether the automaton
// called name accepts it and how many copies were active at the peak.
// Interactive sessions print a header and a prompt and stop on "exit" or "quit".
func (r *Runner) Run(ctx context.Context, engine *Engine, name string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	// Resolve once so that a missing automaton fails before reading input.
	def, err := engine.Definition(ctx, name)
	if err != nil {
		return err
	}

	if !r.Headless {
		header := fmt.Sprintf("# %s\n\n%s", def.Name, def.Description)
		if r.Renderer != nil {
			if rendered, err := r.Renderer(header); err == nil {
				header = rendered
			}
		}
		fmt.Fprintln(writer, strings.TrimSpace(header))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !r.Headless {
			fmt.Fprint(writer, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("input error: %w", err)
		}
		if err == io.EOF && text == "" {
			return nil
		}

		// Spaces may be alphabet symbols, so only the line ending is stripped.
		input := strings.TrimRight(text, "\r\n")
		if !r.Headless && (input == "exit" || input == "quit") {
			fmt.Fprintln(writer, "Bye!")
			return nil
		}

		tr, qerr := engine.Trace(ctx, name, input)
		if qerr != nil {
			return fmt.Errorf("query error: %w", qerr)
		}
		verdict := "reject"
		if tr.Accepted {
			verdict = "accept"
		}
		fmt.Fprintf(writer, "%s\tcopies=%d\t%q\n", verdict, tr.MaxCopies, input)

		if err == io.EOF {
			return nil
		}
	}
}
