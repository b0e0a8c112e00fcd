package main

import (
	"github.com/aretw0/nfa/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate NAME",
	Short: "Generate a standalone Go matcher for an automaton",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()

		pkg, _ := cmd.Flags().GetString("package")
		ident, _ := cmd.Flags().GetString("name")
		out, _ := cmd.Flags().GetString("out")
		exitOnError(cli.Generate(cmd.Context(), env.Engine, printer(), args[0], cli.GenerateOptions{
			Package:    pkg,
			Identifier: ident,
			OutFile:    out,
		}))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register FILE...",
	Short: "Store definition files in Redis",
	Long:  `Parses each YAML or JSON definition and saves it to the store selected with --redis.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, _ := setup(cmd)
		defer env.Close()
		exitOnError(cli.Register(cmd.Context(), env.Engine, printer(), args))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, registerCmd)

	generateCmd.Flags().String("package", "main", "Package clause of the generated file")
	generateCmd.Flags().String("name", "", "Identifier prefix (default: derived from NAME)")
	generateCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
}
