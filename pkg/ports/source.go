package ports

import (
	"context"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

// RuleSource loads a rule forest. Implementations validate eagerly: a forest
// is either fully valid or an error is returned.
type RuleSource interface {
	LoadForest(ctx context.Context) (*rules.Forest, error)
}

// CatalogSource loads a domain catalog.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// HitSource supplies parsed hit records keyed by query ID.
type HitSource interface {
	ReadHits(ctx context.Context) (map[string][]domain.HitRecord, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used to reload rules while serving.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying data changes.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
