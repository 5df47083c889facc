package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/internal/cli"
	"github.com/aretw0/synthaser/internal/presentation/tui"
	httpAdapter "github.com/aretw0/synthaser/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the classification engine in server mode, exposing a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		streams := httpAdapter.NewStreamManager()
		env, err := newEnv(cmd, synthaser.WithReloadListener(cli.ReloadEvents(streams)))
		if err != nil {
			return err
		}
		defer env.Close()

		addr := env.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		watch := env.Config.Server.Watch
		if cmd.Flags().Changed("watch") {
			watch, _ = cmd.Flags().GetBool("watch")
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(cmd.ErrOrStderr(), synthaser.Version)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return env.Serve(ctx, addr, streams, watch)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the rule file when it changes")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
