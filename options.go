package synthaser

import (
	"log/slog"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/ports"
	"github.com/aretw0/synthaser/pkg/rules"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog sets the domain catalog, bypassing any catalog source.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogSource loads the catalog from a source during New.
func WithCatalogSource(src ports.CatalogSource) Option {
	return func(e *Engine) {
		e.catalogSource = src
	}
}

// WithForest sets a prebuilt rule forest. It cannot be reloaded.
func WithForest(f *rules.Forest) Option {
	return func(e *Engine) {
		e.forest = f
	}
}

// WithRuleSource loads the forest from a source during New and on Reload.
func WithRuleSource(src ports.RuleSource) Option {
	return func(e *Engine) {
		e.ruleSource = src
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithWorkers bounds how many sequences are processed concurrently.
// Zero or less means one worker per sequence.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithStore persists every successful run.
func WithStore(s ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithReloadListener is called after every Reload attempt with the new
// forest, or with the error that kept the old one.
func WithReloadListener(fn func(*rules.Forest, error)) Option {
	return func(e *Engine) {
		e.onReload = fn
	}
}
