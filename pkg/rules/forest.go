package rules

import (
	"fmt"
	"sort"

	"github.com/aretw0/synthaser/pkg/domain"
)

// HierarchyNode describes the position of a rule in the forest by name.
type HierarchyNode struct {
	Name     string          `json:"name" yaml:"name" mapstructure:"name"`
	Children []HierarchyNode `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// Node is a rule placed in the forest.
type Node struct {
	Rule     *Rule
	Children []*Node
	Parent   *Node
	Depth    int
}

// Path returns rule names from the root down to this node.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent {
		path = append([]string{cur.Rule.Name()}, path...)
	}
	return path
}

// Forest is a rooted forest of rules. Sibling order is declaration order.
// It is read-only after construction and may be shared across goroutines.
type Forest struct {
	roots  []*Node
	byName map[string]*Node
	rules  []*Rule
}

// NewForest places rules into a forest following hierarchy. An empty
// hierarchy makes every rule a root, in declaration order.
//
// Duplicate rule names, unknown names in the hierarchy and rules placed more
// than once are reported together as validation errors.
func NewForest(rules []*Rule, hierarchy []HierarchyNode) (*Forest, error) {
	f := &Forest{
		byName: make(map[string]*Node, len(rules)),
		rules:  rules,
	}

	var errs []error
	known := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		if _, dup := known[r.Name()]; dup {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindForest, Subject: r.Name(), Reason: "duplicate rule name"})
			continue
		}
		known[r.Name()] = r
	}

	if len(hierarchy) == 0 {
		for _, r := range rules {
			hierarchy = append(hierarchy, HierarchyNode{Name: r.Name()})
		}
	}

	var place func(h HierarchyNode, parent *Node, depth int) *Node
	place = func(h HierarchyNode, parent *Node, depth int) *Node {
		r, ok := known[h.Name]
		if !ok {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindForest, Subject: h.Name, Reason: "unknown rule in hierarchy"})
			return nil
		}
		if _, seen := f.byName[h.Name]; seen {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindForest, Subject: h.Name, Reason: "rule appears more than once in hierarchy"})
			return nil
		}
		n := &Node{Rule: r, Parent: parent, Depth: depth}
		f.byName[h.Name] = n
		for _, child := range h.Children {
			if c := place(child, n, depth+1); c != nil {
				n.Children = append(n.Children, c)
			}
		}
		return n
	}

	for _, h := range hierarchy {
		if n := place(h, nil, 0); n != nil {
			f.roots = append(f.roots, n)
		}
	}

	if err := domain.Join(errs); err != nil {
		return nil, err
	}
	return f, nil
}

// HierarchyFromEdges builds a nested hierarchy from root names and
// parent→children references. Cycles and unreachable edges are rejected.
func HierarchyFromEdges(roots []string, edges map[string][]string) ([]HierarchyNode, error) {
	var errs []error
	reached := make(map[string]bool)

	var build func(name string, stack map[string]bool) HierarchyNode
	build = func(name string, stack map[string]bool) HierarchyNode {
		node := HierarchyNode{Name: name}
		reached[name] = true
		stack[name] = true
		defer delete(stack, name)
		for _, child := range edges[name] {
			if stack[child] {
				errs = append(errs, &domain.ValidationError{
					Kind:    domain.KindForest,
					Subject: child,
					Reason:  fmt.Sprintf("cyclic reference from %q", name),
				})
				continue
			}
			node.Children = append(node.Children, build(child, stack))
		}
		return node
	}

	out := make([]HierarchyNode, 0, len(roots))
	for _, root := range roots {
		out = append(out, build(root, make(map[string]bool)))
	}

	parents := make([]string, 0, len(edges))
	for parent := range edges {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	for _, parent := range parents {
		if !reached[parent] {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindForest, Subject: parent, Reason: "parent is not reachable from any root"})
		}
	}

	if err := domain.Join(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// Roots returns the root nodes in declaration order.
func (f *Forest) Roots() []*Node { return f.roots }

// Lookup returns the node placed for a rule name.
func (f *Forest) Lookup(name string) (*Node, bool) {
	n, ok := f.byName[name]
	return n, ok
}

// Rules returns every rule handed to the forest, placed or not.
func (f *Forest) Rules() []*Rule { return f.rules }

// Len returns the number of placed rules.
func (f *Forest) Len() int { return len(f.byName) }

// Unplaced returns names of rules that are not part of the hierarchy.
func (f *Forest) Unplaced() []string {
	var out []string
	for _, r := range f.rules {
		if _, ok := f.byName[r.Name()]; !ok {
			out = append(out, r.Name())
		}
	}
	return out
}

// Walk visits every placed node depth-first in declaration order.
// Returning an error from fn stops the walk.
func (f *Forest) Walk(fn func(*Node) error) error {
	var visit func(n *Node) error
	visit = func(n *Node) error {
		if err := fn(n); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range f.roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// Hierarchy returns the nested name layout of the forest.
func (f *Forest) Hierarchy() []HierarchyNode {
	var conv func(n *Node) HierarchyNode
	conv = func(n *Node) HierarchyNode {
		h := HierarchyNode{Name: n.Rule.Name()}
		for _, c := range n.Children {
			h.Children = append(h.Children, conv(c))
		}
		return h
	}
	out := make([]HierarchyNode, len(f.roots))
	for i, r := range f.roots {
		out[i] = conv(r)
	}
	return out
}

// Catalog is the family lookup used to cross-check rule filters.
type Catalog interface {
	Lookup(family string) (domain.CatalogEntry, bool)
}

// CheckCatalog reports every filter family missing from the catalog as a
// *domain.ConfigurationError.
func CheckCatalog(f *Forest, cat Catalog) error {
	var errs []error
	for _, r := range f.rules {
		filters := r.Families()
		types := make([]string, 0, len(filters))
		for typ := range filters {
			types = append(types, typ)
		}
		sort.Strings(types)
		for _, typ := range types {
			for _, fam := range filters[typ] {
				if _, ok := cat.Lookup(fam); !ok {
					errs = append(errs, &domain.ConfigurationError{Rule: r.Name(), Type: typ, Family: fam})
				}
			}
		}
	}
	return domain.Join(errs)
}
