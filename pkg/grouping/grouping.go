// Package grouping reduces classified sequences to the label structure that
// was actually observed: which sequences carry each label, and the pruned
// label tree used to lay out annotations in reports.
package grouping

import (
	"sort"

	"github.com/aretw0/synthaser/pkg/domain"
)

// LabelIndex maps a label to the IDs of the sequences carrying it, in input order.
type LabelIndex map[string][]string

// Labels returns the indexed labels in lexical order.
func (ix LabelIndex) Labels() []string {
	out := make([]string, 0, len(ix))
	for label := range ix {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Node is one observed label at a given position in a classification path.
type Node struct {
	Label    string  `json:"label"`
	Depth    int     `json:"depth"`
	Children []*Node `json:"children,omitempty"`
}

func (n *Node) child(label string) *Node {
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	c := &Node{Label: label, Depth: n.Depth + 1}
	n.Children = append(n.Children, c)
	return c
}

// Hierarchy is the label forest pruned to the paths that occurred.
// Nodes keep first-seen order.
type Hierarchy struct {
	Roots []*Node `json:"roots"`
}

func (h *Hierarchy) root(label string) *Node {
	for _, r := range h.Roots {
		if r.Label == label {
			return r
		}
	}
	r := &Node{Label: label}
	h.Roots = append(h.Roots, r)
	return r
}

func (h *Hierarchy) add(path domain.LabelPath) {
	if len(path) == 0 {
		return
	}
	n := h.root(path[0])
	for _, label := range path[1:] {
		n = n.child(label)
	}
}

// Key is a label together with its depth in the hierarchy.
type Key struct {
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// NestedKeys lists every node depth-first, parents before children.
func (h *Hierarchy) NestedKeys() []Key {
	var out []Key
	var visit func(n *Node)
	visit = func(n *Node) {
		out = append(out, Key{Label: n.Label, Depth: n.Depth})
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, r := range h.Roots {
		visit(r)
	}
	return out
}

// MaxDepth returns the depth of the deepest node, or -1 for an empty hierarchy.
func (h *Hierarchy) MaxDepth() int {
	deepest := -1
	for _, k := range h.NestedKeys() {
		deepest = max(deepest, k.Depth)
	}
	return deepest
}

// GroupByLabel builds the label index and observed hierarchy for seqs.
// A sequence is listed at most once per label even when several of its
// paths share that label.
func GroupByLabel(seqs []domain.Sequence) (LabelIndex, *Hierarchy) {
	ix := make(LabelIndex)
	h := &Hierarchy{}
	for _, s := range seqs {
		for _, label := range s.Labels() {
			ix[label] = append(ix[label], s.ID)
		}
		for _, path := range s.LabelPaths {
			h.add(path)
		}
	}
	return ix, h
}

// AnnotationGroups splits the hierarchy into one group per root. Inside a
// group, keys are in reverse depth-first order so the most specific labels
// come first and are drawn innermost.
func AnnotationGroups(h *Hierarchy) [][]Key {
	var groups [][]Key
	var group []Key
	for _, k := range h.NestedKeys() {
		if k.Depth == 0 && len(group) > 0 {
			groups = append(groups, group)
			group = nil
		}
		group = append([]Key{k}, group...)
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}
