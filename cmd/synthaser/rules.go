package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/synthaser/internal/cli"
	"github.com/aretw0/synthaser/pkg/adapters/file"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dump, _ := cmd.Flags().GetBool("defaults"); dump {
			_, err := cmd.OutOrStdout().Write(file.DefaultRules())
			return err
		}

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return cli.WriteForest(cmd.OutOrStdout(), env.Engine.Forest(), outputProfile(cmd, false))
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("defaults", false, "Print the built-in rule file, a starting point for custom rules")
}
