package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aretw0/synthaser/internal/cli"
	"github.com/aretw0/synthaser/internal/presentation/graph"
	"github.com/aretw0/synthaser/pkg/classify"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/resolve"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the rule forest as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the rule forest. With --hits and
--sequence, the rules matched by that sequence are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hitsPath, _ := cmd.Flags().GetString("hits")
		seqID, _ := cmd.Flags().GetString("sequence")

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		f := env.Engine.Forest()
		var overlay *graph.GraphOverlay
		if hitsPath != "" {
			if seqID == "" {
				return fmt.Errorf("--sequence is required with --hits")
			}
			batch, err := cli.HitSource(hitsPath, cmd.InOrStdin()).ReadHits(cmd.Context())
			if err != nil {
				return err
			}
			hits, ok := batch[seqID]
			if !ok {
				return fmt.Errorf("sequence %q not found in %s", seqID, hitsPath)
			}
			domains, err := resolve.Resolve(hits, env.Catalog)
			if err != nil {
				return err
			}
			seq := &domain.Sequence{ID: seqID, Domains: domains}
			seq.LabelPaths = classify.Classify(seq, f)

			overlay = &graph.GraphOverlay{}
			for name := range classify.Matched(seq, f) {
				overlay.Matched = append(overlay.Matched, name)
			}
			sort.Strings(overlay.Matched)
			for _, p := range seq.LabelPaths {
				overlay.Leaves = append(overlay.Leaves, p.Leaf())
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(f, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("hits", "", "Hit file used to highlight one sequence")
	graphCmd.Flags().String("sequence", "", "Sequence ID to highlight")
}
