package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nfa",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, nfa.Version)
			return
		}
		fmt.Printf("nfa version %s\n", strings.TrimSpace(nfa.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
