package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/grouping"
)

// Summary builds a markdown report of a classified batch: one table row per
// sequence, then the observed label hierarchy with member counts.
func Summary(runID string, seqs []domain.Sequence, index grouping.LabelIndex, h *grouping.Hierarchy) string {
	var sb strings.Builder

	classified := 0
	for i := range seqs {
		if seqs[i].Classified() {
			classified++
		}
	}

	fmt.Fprintf(&sb, "# Run %s\n\n", runID)
	fmt.Fprintf(&sb, "%d sequences, %d classified.\n\n", len(seqs), classified)

	sb.WriteString("| Sequence | Architecture | Classification |\n")
	sb.WriteString("|---|---|---|\n")
	for i := range seqs {
		s := &seqs[i]
		arch := s.Architecture()
		if arch == "" {
			arch = "-"
		}
		labels := make([]string, len(s.LabelPaths))
		for j, p := range s.LabelPaths {
			labels[j] = p.String()
		}
		class := strings.Join(labels, "; ")
		if class == "" {
			class = "_unclassified_"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(s.ID), arch, escapeCell(class))
	}

	keys := h.NestedKeys()
	if len(keys) > 0 {
		sb.WriteString("\n## Groups\n\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s- **%s** (%d)\n", strings.Repeat("  ", k.Depth), k.Label, len(index[k.Label]))
		}
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
