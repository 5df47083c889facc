package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the rule file and catalog for consistency",
	Long: `Loads the configured rules and catalog, compiles every rule expression,
builds the forest and checks every family filter against the catalog.
Rules left out of the hierarchy are reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		defer env.Close()

		f := env.Engine.Forest()
		out := cmd.OutOrStdout()
		for _, name := range f.Unplaced() {
			fmt.Fprintf(out, "warning: rule %q is not part of the hierarchy\n", name)
		}
		fmt.Fprintf(out, "Rules are valid! %d rules in %d trees, %d catalog families ✅\n", f.Len(), len(f.Roots()), env.Catalog.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
