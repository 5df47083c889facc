package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/synthaser/pkg/rules"
)

// GraphOverlay marks classification results on the forest.
type GraphOverlay struct {
	// Matched lists every rule that matched for the sequence.
	Matched []string
	// Leaves lists the last rule of each label path.
	Leaves []string
}

// GenerateMermaid produces a Mermaid flowchart of a rule forest.
// It applies semantic styling:
// - Root: (["Stadium"])
// - Rule with renames: {{"Hexagon"}}
// - Rule with family filters: [["Subroutine"]]
// - Default: ["Rectangle"]
// Each node shows the rule name and its readable expression. Overlay
// styles (matched/leaf) are applied if provided.
func GenerateMermaid(f *rules.Forest, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	_ = f.Walk(func(n *rules.Node) error {
		safeID := sanitizeMermaidID(n.Rule.Name())

		opener, closer := "[", "]"
		switch {
		case n.Parent == nil:
			opener, closer = "([", "])"
		case len(n.Rule.Renames()) > 0:
			opener, closer = "{{", "}}"
		case len(n.Rule.Families()) > 0:
			opener, closer = "[[", "]]"
		}

		label := escapeLabel(n.Rule.Name()) + "<br/>" + escapeLabel(n.Rule.Readable())
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		if n.Parent != nil {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(n.Parent.Rule.Name()), safeID)
		}
		return nil
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills regardless of theme.
		sb.WriteString("    classDef matched fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef leaf fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		leaves := make(map[string]bool, len(overlay.Leaves))
		for _, id := range overlay.Leaves {
			leaves[sanitizeMermaidID(id)] = true
		}

		seen := make(map[string]bool)
		for _, id := range overlay.Matched {
			safeID := sanitizeMermaidID(id)
			if seen[safeID] || safeID == "" || leaves[safeID] {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s matched;\n", safeID)
		}
		seen = make(map[string]bool)
		for _, id := range overlay.Leaves {
			safeID := sanitizeMermaidID(id)
			if seen[safeID] || safeID == "" {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s leaf;\n", safeID)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, id)
}
