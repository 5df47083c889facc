package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/synthaser"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of synthaser",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "synthaser version %s\n", strings.TrimSpace(synthaser.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
