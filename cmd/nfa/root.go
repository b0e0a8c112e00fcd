package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "nfa",
	Short: "nfa simulates nondeterministic finite automata",
	Long: `nfa loads automata described in YAML, JSON or markdown frontmatter and answers
membership, width and determinism queries from the command line, over HTTP or as MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("dir", ".", "Directory containing the automaton definitions")
	flags.String("config", "", "Project file (default: nfa.yaml or nfa.json in --dir)")
	flags.String("redis", "", "Redis URL to load definitions from instead of --dir")
	flags.Bool("debug", false, "Log engine events to stderr")
	flags.Bool("strict", false, "Refuse automata whose definitions have rejected entries")
}

// loadConfig reads the project file and lets explicit flags override it.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")

	path, _ := flags.GetString("config")
	if path == "" {
		path = cli.FindConfig(dir)
	}
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("dir") || path == "" {
		cfg.Dir = dir
	}
	if flags.Changed("redis") {
		cfg.Redis.URL, _ = flags.GetString("redis")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	return cfg, nil
}

// setup builds the environment shared by every command, exiting on failure.
func setup(cmd *cobra.Command) (*cli.Environment, cli.Config) {
	cfg, err := loadConfig(cmd)
	exitOnError(err)

	env, err := cli.Setup(cmd.Context(), cfg, nil)
	exitOnError(err)
	return env, cfg
}

func printer() cli.Printer {
	return cli.Printer{Out: os.Stdout, Render: tui.RendererFor(os.Stdout)}
}

// exitOnError exits 1 on any error. Negative verdicts were already printed
// and need no message.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, cli.ErrFailedCheck) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
