package main

import (
	"context"
	"os"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var acceptsCmd = &cobra.Command{
	Use:   "accepts NAME [INPUT...]",
	Short: "Check whether an automaton accepts each input",
	Long: `Prints accept or reject for every INPUT and exits 1 if any was rejected.
Without INPUT arguments, inputs are read line by line from stdin.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()

		name, inputs := args[0], args[1:]
		if len(inputs) > 0 {
			exitOnError(cli.Accepts(cmd.Context(), env.Engine, printer(), name, inputs))
			return
		}

		headless, _ := cmd.Flags().GetBool("headless")
		if !tui.IsTerminal(os.Stdin) {
			headless = true
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		exitOnError(cli.Session(ctx, env.Engine, os.Stdin, printer(), name, headless))
	},
}

var copiesCmd = &cobra.Command{
	Use:   "copies NAME INPUT...",
	Short: "Print the peak number of simultaneously active states",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Copies(cmd.Context(), env.Engine, printer(), args[0], args[1:]))
	},
}

var checkCmd = &cobra.Command{
	Use:   "check NAME",
	Short: "Report whether an automaton is deterministic",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Check(cmd.Context(), env.Engine, printer(), args[0]))
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace NAME INPUT",
	Short: "Show the active states after every symbol",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Trace(cmd.Context(), env.Engine, printer(), args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd, copiesCmd, checkCmd, traceCmd)

	acceptsCmd.Flags().Bool("headless", false, "Read stdin without header or prompt")
}
