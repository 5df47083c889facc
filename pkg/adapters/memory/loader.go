package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

// Loader implements ports.RuleSource and ports.CatalogSource from values
// held in memory. Useful for tests and hosts that build rule sets in code.
type Loader struct {
	defs      []rules.Definition
	hierarchy []rules.HierarchyNode
	entries   []domain.CatalogEntry
}

// NewLoader creates a loader over rule definitions and their hierarchy.
// A nil hierarchy makes every rule a root.
func NewLoader(defs []rules.Definition, hierarchy []rules.HierarchyNode) *Loader {
	return &Loader{defs: defs, hierarchy: hierarchy}
}

// WithCatalog sets the catalog entries returned by LoadCatalog.
func (l *Loader) WithCatalog(entries ...domain.CatalogEntry) *Loader {
	l.entries = entries
	return l
}

// LoadForest compiles the definitions into a forest.
func (l *Loader) LoadForest(ctx context.Context) (*rules.Forest, error) {
	compiled := make([]*rules.Rule, 0, len(l.defs))
	var errs []error
	for _, def := range l.defs {
		r, err := rules.NewRule(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled = append(compiled, r)
	}
	if err := domain.Join(errs); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	return rules.NewForest(compiled, l.hierarchy)
}

// LoadCatalog builds the catalog, or returns the default one when no
// entries were given.
func (l *Loader) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if len(l.entries) == 0 {
		return catalog.Default(), nil
	}
	return catalog.New(l.entries...)
}
