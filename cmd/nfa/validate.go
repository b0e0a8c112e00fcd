package main

import (
	"github.com/aretw0/nfa/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [NAME...]",
	Short: "Check definitions for consistency",
	Long: `Compiles every named automaton (all of them by default) and reports rejected
entries, unreachable states, states that cannot reach a final state and unused symbols.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Validate(env.Engine, printer(), args))
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect NAME",
	Short: "Describe an automaton and its transition table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Inspect(cmd.Context(), env.Engine, printer(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, inspectCmd)
}
