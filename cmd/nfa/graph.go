package main

import (
	"github.com/aretw0/nfa/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph NAME",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the automaton.
With --input, the states visited by that run are highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()

		var input *string
		if cmd.Flags().Changed("input") {
			value, _ := cmd.Flags().GetString("input")
			input = &value
		}
		exitOnError(cli.Graph(cmd.Context(), env.Engine, printer(), args[0], input))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the run on this input")
}
