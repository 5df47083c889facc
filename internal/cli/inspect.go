package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/synthaser/pkg/rules"
)

// WriteForest prints the rule forest as an indented tree, each rule followed
// by its readable expression, filters and renames.
func WriteForest(w io.Writer, f *rules.Forest, p termenv.Profile) error {
	err := f.Walk(func(n *rules.Node) error {
		indent := strings.Repeat("  ", n.Depth)
		_, err := fmt.Fprintf(w, "%s%s  %s\n", indent, p.String(n.Rule.Name()).Bold(), p.String(n.Rule.Readable()).Faint())
		if err != nil {
			return err
		}
		families := n.Rule.Families()
		types := make([]string, 0, len(families))
		for t := range families {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(w, "%s    filter %s: %s\n", indent, t, strings.Join(families[t], ", "))
		}
		for _, rn := range n.Rule.Renames() {
			fmt.Fprintf(w, "%s    rename %s -> %s%s\n", indent, rn.From, rn.To, describeRename(rn))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if unplaced := f.Unplaced(); len(unplaced) > 0 {
		_, err = fmt.Fprintf(w, "\nunplaced: %s\n", strings.Join(unplaced, ", "))
	}
	return err
}

func describeRename(rn rules.Rename) string {
	var parts []string
	if len(rn.After) > 0 {
		parts = append(parts, "after "+strings.Join(rn.After, "/"))
	}
	if len(rn.Before) > 0 {
		parts = append(parts, "before "+strings.Join(rn.Before, "/"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
