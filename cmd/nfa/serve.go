package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP query server",
	Long:  `Exposes the automata in --dir (or --redis) as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		exitOnError(err)
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := logging.NewJSON(os.Stderr, level)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		env, err := cli.Setup(ctx, cfg, logger)
		exitOnError(err)
		defer env.Close()

		exitOnError(cli.Serve(ctx, env, ":"+cfg.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
