package classify

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

// Classify evaluates the forest against a sequence's domains and returns one
// label path per matching branch, roots in declaration order. A sequence no
// root matches gets an empty, non-nil result.
func Classify(seq *domain.Sequence, f *rules.Forest) []domain.LabelPath {
	paths := []domain.LabelPath{}
	for _, root := range f.Roots() {
		paths = append(paths, evaluate(root, seq.Domains, nil)...)
	}
	return paths
}

func evaluate(n *rules.Node, domains []domain.Domain, prefix domain.LabelPath) []domain.LabelPath {
	working := domains
	if rn := n.Rule.Renames(); len(rn) > 0 {
		working = ApplyRenames(domains, rn)
	}
	if !n.Rule.Evaluate(n.Rule.Present(working)) {
		return nil
	}

	path := make(domain.LabelPath, len(prefix), len(prefix)+1)
	copy(path, prefix)
	path = append(path, n.Rule.Name())

	var out []domain.LabelPath
	for _, child := range n.Children {
		out = append(out, evaluate(child, working, path)...)
	}
	if len(out) == 0 {
		return []domain.LabelPath{path}
	}
	return out
}

// Matched returns the names of every rule that matched somewhere in the
// forest for seq.
func Matched(seq *domain.Sequence, f *rules.Forest) map[string]bool {
	out := make(map[string]bool)
	for _, path := range Classify(seq, f) {
		for _, name := range path {
			out[name] = true
		}
	}
	return out
}

// Batch classifies seqs concurrently with at most workers goroutines
// (unbounded when workers <= 0). Inputs are left untouched; the returned
// copies carry their label paths and are ordered by sequence ID.
func Batch(ctx context.Context, seqs []domain.Sequence, f *rules.Forest, workers int) ([]domain.Sequence, error) {
	out := make([]domain.Sequence, len(seqs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range seqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := seqs[i]
			s.LabelPaths = Classify(&s, f)
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
