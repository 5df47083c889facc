package synthaser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/synthaser/pkg/adapters/file"
	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/classify"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/ports"
	"github.com/aretw0/synthaser/pkg/resolve"
	"github.com/aretw0/synthaser/pkg/rules"
)

// Engine is the high-level entry point of the library. The catalog and the
// current forest are shared read-only by every concurrent Run.
type Engine struct {
	catalog       *catalog.Catalog
	catalogSource ports.CatalogSource
	forest        *rules.Forest
	ruleSource    ports.RuleSource
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	workers       int
	store         ports.ResultStore
	onReload      func(*rules.Forest, error)

	mu    sync.RWMutex
	now   func() time.Time
	newID func() string
}

// New initializes an Engine. Without a catalog or catalog source it uses the
// default catalog; without a forest or rule source it loads the embedded
// default rules. The forest is checked against the catalog eagerly.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	ctx := context.Background()

	if eng.catalog == nil {
		if eng.catalogSource == nil {
			eng.catalogSource = file.NewCatalogFile("")
		}
		cat, err := eng.catalogSource.LoadCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.catalog = cat
	}

	if eng.forest == nil {
		if eng.ruleSource == nil {
			eng.ruleSource = file.NewRuleFile("", nil)
		}
		f, err := eng.ruleSource.LoadForest(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		eng.forest = f
	}

	if err := rules.CheckCatalog(eng.forest, eng.catalog); err != nil {
		return nil, err
	}

	eng.logger.Debug("engine ready",
		"families", eng.catalog.Len(),
		"rules", eng.forest.Len(),
		"workers", eng.workers,
	)
	return eng, nil
}

// Catalog returns the domain catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Forest returns the current rule forest.
func (e *Engine) Forest() *rules.Forest {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.forest
}

// Store returns the configured result store, or nil.
func (e *Engine) Store() ports.ResultStore { return e.store }

// Reload re-reads the rule source and swaps the forest. Runs already in
// progress finish with the forest they started with. On error the current
// forest is kept.
func (e *Engine) Reload(ctx context.Context) error {
	f, err := e.loadForest(ctx)
	if e.onReload != nil {
		e.onReload(f, err)
	}
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.forest = f
	e.mu.Unlock()

	e.logger.Info("rules reloaded", "rules", f.Len())
	return nil
}

func (e *Engine) loadForest(ctx context.Context) (*rules.Forest, error) {
	if e.ruleSource == nil {
		return nil, errors.New("engine has no rule source to reload from")
	}
	f, err := e.ruleSource.LoadForest(ctx)
	if err != nil {
		return nil, err
	}
	if err := rules.CheckCatalog(f, e.catalog); err != nil {
		return nil, err
	}
	return f, nil
}

// WatchRules reloads the forest whenever a watchable rule source changes,
// until ctx is done. Failed reloads are logged and the previous forest stays.
func (e *Engine) WatchRules(ctx context.Context) error {
	w, ok := e.ruleSource.(ports.Watchable)
	if !ok {
		return errors.New("rule source cannot be watched")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	if changes == nil {
		return errors.New("rule source has no file to watch")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := e.Reload(ctx); err != nil {
				e.logger.Error("rule reload failed", "error", err)
			}
		}
	}
}

// Validate checks every query without resolving anything: IDs must be
// non-empty and unique, and every hit record well formed. All problems are
// reported together.
func Validate(queries []Query) error {
	var errs []error
	seen := make(map[string]bool, len(queries))
	for _, q := range queries {
		if q.ID == "" {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindHit, Reason: "query without ID"})
			continue
		}
		if seen[q.ID] {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindHit, Subject: q.ID, Reason: "duplicate query ID"})
			continue
		}
		seen[q.ID] = true
		for _, h := range q.Hits {
			if err := h.Validate(); err != nil {
				errs = append(errs, &resolve.QueryError{SequenceID: q.ID, Err: err})
			}
		}
	}
	return domain.Join(errs)
}

// Run resolves and classifies a batch. Any malformed query aborts the whole
// batch before processing starts. Sequences in the report are ordered by ID.
func (e *Engine) Run(ctx context.Context, queries []Query) (*Report, error) {
	if err := Validate(queries); err != nil {
		return nil, err
	}

	forest := e.Forest()
	runID := e.newID()
	logger := e.logger.With("run_id", runID)
	start := e.now()

	seqs := make([]domain.Sequence, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seq, err := e.process(gctx, q, forest)
			if err != nil {
				return &resolve.QueryError{SequenceID: q.ID, Err: err}
			}
			seqs[i] = seq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("run aborted", "error", err)
		return nil, err
	}

	sort.Slice(seqs, func(a, b int) bool { return seqs[a].ID < seqs[b].ID })
	report := NewReport(runID, start.UTC(), seqs)

	if e.store != nil {
		if err := e.store.Save(ctx, report.Result()); err != nil {
			logger.Error("failed to save result", "error", err)
			return nil, fmt.Errorf("failed to save result: %w", err)
		}
	}

	logger.Info("run complete",
		"sequences", len(seqs),
		"classified", report.Classified(),
		"duration", time.Since(start),
	)
	return report, nil
}

func (e *Engine) process(ctx context.Context, q Query, forest *rules.Forest) (domain.Sequence, error) {
	t0 := time.Now()
	domains, err := resolve.Resolve(q.Hits, e.catalog)
	if err != nil {
		return domain.Sequence{}, err
	}
	if e.hooks.OnResolved != nil {
		e.hooks.OnResolved(ctx, &domain.ResolveEvent{
			SequenceID: q.ID,
			Hits:       len(q.Hits),
			Domains:    len(domains),
			Duration:   time.Since(t0),
		})
	}

	seq := domain.Sequence{ID: q.ID, Residues: q.Residues, Domains: domains}

	t1 := time.Now()
	seq.LabelPaths = classify.Classify(&seq, forest)
	if e.hooks.OnClassified != nil {
		e.hooks.OnClassified(ctx, &domain.ClassifyEvent{
			SequenceID: q.ID,
			Paths:      seq.LabelPaths,
			Duration:   time.Since(t1),
		})
	}
	return seq, nil
}

// Result loads a stored run.
func (e *Engine) Result(ctx context.Context, runID string) (*Report, error) {
	if e.store == nil {
		return nil, domain.ErrResultNotFound
	}
	r, err := e.store.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	return ReportFromResult(r), nil
}
