package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/internal/cli"
	"github.com/aretw0/synthaser/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "synthaser",
	Short: "synthaser classifies multi-domain synthases from domain search hits",
	Long: `synthaser collapses overlapping conserved domain hits into ordered domain
architectures and classifies them against a forest of boolean rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	flags.String("rules", "", "Rule file, YAML or JSON (default: built-in rules)")
	flags.String("catalog", "", "Domain catalog file, YAML or JSON (default: built-in catalog)")
	flags.Int("workers", 0, "Sequences processed concurrently (default: number of CPUs)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("store", "", "Result store backend: memory, file or redis")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	var o cli.Overrides
	o.Rules, _ = flags.GetString("rules")
	o.Catalog, _ = flags.GetString("catalog")
	o.Workers, _ = flags.GetInt("workers")
	o.LogLevel, _ = flags.GetString("log-level")
	o.Store, _ = flags.GetString("store")
	return cli.LoadConfig(path, o)
}

func newEnv(cmd *cobra.Command, extra ...synthaser.Option) (*cli.Env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.NewEnv(ctx, cfg, cmd.ErrOrStderr(), extra...)
}

// outputProfile styles output only when stdout is an interactive terminal.
func outputProfile(cmd *cobra.Command, plain bool) termenv.Profile {
	f, ok := cmd.OutOrStdout().(*os.File)
	if plain || !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).Profile
}
