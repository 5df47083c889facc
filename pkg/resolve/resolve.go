// Package resolve collapses overlapping conserved-domain hits into an ordered,
// non-overlapping domain architecture.
package resolve

import (
	"sort"

	"github.com/aretw0/synthaser/pkg/domain"
)

// Catalog is the read-only family lookup the resolver needs.
type Catalog interface {
	Lookup(family string) (domain.CatalogEntry, bool)
}

// candidate is a surviving hit bound to its semantic type.
type candidate struct {
	hit domain.HitRecord
	typ string
	fam string
}

// island is the running union of overlapping candidates.
type island struct {
	start, end int
	best       candidate
}

func (i *island) absorb(c candidate) {
	if c.hit.End > i.end {
		i.end = c.hit.End
	}
	if beats(c.hit, i.best.hit) {
		i.best = c
	}
}

func (i *island) domain() domain.Domain {
	return domain.Domain{
		Type:     i.best.typ,
		Family:   i.best.fam,
		Start:    i.start,
		End:      i.end,
		EValue:   i.best.hit.EValue,
		Bitscore: i.best.hit.Bitscore,
	}
}

// beats reports whether a should replace b as an island representative:
// strictly higher bitscore, or equal bitscore and strictly lower e-value.
func beats(a, b domain.HitRecord) bool {
	if a.Bitscore != b.Bitscore {
		return a.Bitscore > b.Bitscore
	}
	return a.EValue < b.EValue
}

// Resolve filters hits against the catalog and merges overlapping survivors into
// islands, emitting one Domain per island spanning the island's full extent.
//
// Every record is validated first; any malformed record fails the call with a
// *domain.ValidationError (or an *domain.AggregateError for several).
func Resolve(hits []domain.HitRecord, cat Catalog) ([]domain.Domain, error) {
	var errs []error
	for _, h := range hits {
		if err := h.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := domain.Join(errs); err != nil {
		return nil, err
	}

	survivors := filter(hits, cat)
	if len(survivors) == 0 {
		return []domain.Domain{}, nil
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i].hit, survivors[j].hit
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Bitscore > b.Bitscore
	})

	var out []domain.Domain
	cur := &island{start: survivors[0].hit.Start, end: survivors[0].hit.End, best: survivors[0]}
	for _, c := range survivors[1:] {
		if c.hit.Start < cur.end {
			cur.absorb(c)
			continue
		}
		out = append(out, cur.domain())
		cur = &island{start: c.hit.Start, end: c.hit.End, best: c}
	}
	out = append(out, cur.domain())

	return out, nil
}

// filter drops superfamily hits, hits of families absent from the catalog and
// hits scoring below their family's minimum bitscore.
func filter(hits []domain.HitRecord, cat Catalog) []candidate {
	out := make([]candidate, 0, len(hits))
	for _, h := range hits {
		if h.Class != domain.HitSpecific {
			continue
		}
		entry, ok := cat.Lookup(h.Family)
		if !ok || h.Bitscore < entry.MinBitscore {
			continue
		}
		out = append(out, candidate{hit: h, typ: entry.Type, fam: entry.Family})
	}
	return out
}

// Accepted returns the hits that pass the catalog filter, in input order.
func Accepted(hits []domain.HitRecord, cat Catalog) []domain.HitRecord {
	cs := filter(hits, cat)
	out := make([]domain.HitRecord, len(cs))
	for i, c := range cs {
		out[i] = c.hit
	}
	return out
}

// ResolveAll resolves every query of a batch. The first malformed query aborts
// the batch.
func ResolveAll(batch map[string][]domain.HitRecord, cat Catalog) (map[string][]domain.Domain, error) {
	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[string][]domain.Domain, len(batch))
	for _, id := range ids {
		domains, err := Resolve(batch[id], cat)
		if err != nil {
			return nil, &QueryError{SequenceID: id, Err: err}
		}
		out[id] = domains
	}
	return out, nil
}

// QueryError ties a resolution failure to its query.
type QueryError struct {
	SequenceID string
	Err        error
}

func (e *QueryError) Error() string {
	return "query " + e.SequenceID + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
