package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/synthaser/internal/cli"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [hits.json]",
	Short: "Resolve and classify a batch of hit records",
	Long: `Reads a JSON document mapping query IDs to their hit records, resolves
each query into a domain architecture and classifies it.

Reads standard input when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		format, _ := cmd.Flags().GetString("format")
		domains, _ := cmd.Flags().GetBool("domains")
		plain, _ := cmd.Flags().GetBool("plain")

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		_, err = env.Classify(cmd.Context(), cli.HitSource(path, cmd.InOrStdin()), cmd.OutOrStdout(), cli.OutputOptions{
			Format:  format,
			Profile: outputProfile(cmd, plain),
			Domains: domains,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: table, markdown or json")
	classifyCmd.Flags().Bool("domains", false, "List resolved domains under each sequence (table format)")
	classifyCmd.Flags().Bool("plain", false, "Disable colours and markdown styling")
}
