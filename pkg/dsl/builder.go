package dsl

import (
	"fmt"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

// Builder manages the forest construction.
type Builder struct {
	rules map[string]*RuleBuilder
	order []string
}

// New creates a new forest builder.
func New() *Builder {
	return &Builder{
		rules: make(map[string]*RuleBuilder),
	}
}

// Add declares a rule. Rules without a parent become roots.
// If the rule already exists, it returns the existing builder.
func (b *Builder) Add(name string) *RuleBuilder {
	if rb, ok := b.rules[name]; ok {
		return rb
	}
	rb := &RuleBuilder{
		def:     rules.Definition{Name: name},
		builder: b,
	}
	b.rules[name] = rb
	b.order = append(b.order, name)
	return rb
}

// Build compiles every rule and places it in the forest. Siblings keep the
// order in which they were added.
func (b *Builder) Build() (*rules.Forest, error) {
	compiled := make([]*rules.Rule, 0, len(b.order))
	var errs []error
	for _, name := range b.order {
		r, err := rules.NewRule(b.rules[name].def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled = append(compiled, r)
	}
	if err := domain.Join(errs); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	var roots []string
	edges := make(map[string][]string)
	for _, name := range b.order {
		parent := b.rules[name].parent
		if parent == "" {
			roots = append(roots, name)
			continue
		}
		edges[parent] = append(edges[parent], name)
	}

	hierarchy, err := rules.HierarchyFromEdges(roots, edges)
	if err != nil {
		return nil, fmt.Errorf("failed to build hierarchy: %w", err)
	}
	return rules.NewForest(compiled, hierarchy)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *rules.Forest {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}
