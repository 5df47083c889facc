package resolve_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		domain.CatalogEntry{Family: "PKS_KS", Type: "KS"},
		domain.CatalogEntry{Family: "PKS", Type: "KS"},
		domain.CatalogEntry{Family: "SAT", Type: "SAT"},
		domain.CatalogEntry{Family: "PKS_AT", Type: "AT", MinBitscore: 50},
		domain.CatalogEntry{Family: "PP-binding", Type: "ACP"},
	)
	require.NoError(t, err)
	return c
}

func hit(family string, start, end int, evalue, bitscore float64) domain.HitRecord {
	return domain.HitRecord{Family: family, Class: domain.HitSpecific, Start: start, End: end, EValue: evalue, Bitscore: bitscore}
}

func TestResolve_RedundantHitsCollapse(t *testing.T) {
	hits := []domain.HitRecord{
		hit("PKS_KS", 100, 400, 1e-50, 300),
		hit("PKS", 110, 380, 1e-40, 250),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Domain{Type: "KS", Family: "PKS_KS", Start: 100, End: 400, EValue: 1e-50, Bitscore: 300}, got[0])
}

func TestResolve_CrossTypeOverlapMerges(t *testing.T) {
	// 45 < 50, so the KS hit joins the SAT island.
	hits := []domain.HitRecord{
		hit("SAT", 0, 50, 1e-10, 80),
		hit("PKS_KS", 45, 400, 1e-90, 420),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 400, got[0].End)
	assert.Equal(t, "KS", got[0].Type, "representative is chosen by score")
}

func TestResolve_TouchingHitsStaySeparate(t *testing.T) {
	hits := []domain.HitRecord{
		hit("SAT", 0, 50, 1e-10, 80),
		hit("PKS_KS", 50, 400, 1e-90, 420),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"SAT", "KS"}, []string{got[0].Type, got[1].Type})
}

func TestResolve_IslandKeepsFullFootprint(t *testing.T) {
	// The best hit is narrower than the union of the island.
	hits := []domain.HitRecord{
		hit("PKS", 10, 200, 1e-5, 90),
		hit("PKS_KS", 50, 150, 1e-60, 310),
		hit("PKS", 140, 260, 1e-5, 95),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PKS_KS", got[0].Family)
	assert.Equal(t, 10, got[0].Start)
	assert.Equal(t, 260, got[0].End)
}

func TestResolve_TieBreakOnEValue(t *testing.T) {
	a := hit("PKS", 0, 100, 1e-20, 200)
	b := hit("PKS_KS", 5, 90, 1e-30, 200)

	for _, order := range [][]domain.HitRecord{{a, b}, {b, a}} {
		got, err := resolve.Resolve(order, testCatalog(t))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "PKS_KS", got[0].Family, "lower e-value wins a bitscore tie")
		assert.Equal(t, 1e-30, got[0].EValue)
	}
}

func TestResolve_FullTieKeepsIncumbent(t *testing.T) {
	hits := []domain.HitRecord{
		hit("PKS", 0, 100, 1e-20, 200),
		hit("PKS_KS", 10, 90, 1e-20, 200),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PKS", got[0].Family)
}

func TestResolve_Filtering(t *testing.T) {
	hits := []domain.HitRecord{
		{Family: "PKS_KS", Class: domain.HitSuperfamily, Start: 0, End: 100, Bitscore: 500},
		hit("unknown_family", 0, 100, 0, 500),
		hit("PKS_AT", 200, 300, 1e-5, 49.9),
		hit("PKS_AT", 400, 500, 1e-5, 50),
	}

	got, err := resolve.Resolve(hits, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AT", got[0].Type)
	assert.Equal(t, 400, got[0].Start)

	assert.Len(t, resolve.Accepted(hits, testCatalog(t)), 1)
}

func TestResolve_Empty(t *testing.T) {
	got, err := resolve.Resolve(nil, testCatalog(t))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolve_SingleHitUnchanged(t *testing.T) {
	h := hit("PP-binding", 900, 970, 1e-12, 60)

	got, err := resolve.Resolve([]domain.HitRecord{h}, testCatalog(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, h, got[0].AsHit())
}

func TestResolve_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		hits []domain.HitRecord
	}{
		{"start equals end", []domain.HitRecord{hit("PKS", 10, 10, 0, 1)}},
		{"start after end", []domain.HitRecord{hit("PKS", 20, 10, 0, 1)}},
		{"negative bitscore", []domain.HitRecord{hit("PKS", 0, 10, 0, -1)}},
		{"negative evalue", []domain.HitRecord{hit("PKS", 0, 10, -1, 1)}},
		{"NaN bitscore", []domain.HitRecord{hit("PKS_AT", 0, 10, 0, math.NaN())}},
		{"NaN evalue", []domain.HitRecord{hit("PKS", 0, 10, math.NaN(), 1)}},
		{"infinite bitscore", []domain.HitRecord{hit("PKS", 0, 10, 0, math.Inf(1))}},
		{"infinite evalue", []domain.HitRecord{hit("PKS", 0, 10, math.Inf(1), 1)}},
		{"malformed superfamily hit", []domain.HitRecord{{Family: "x", Class: domain.HitSuperfamily, Start: 5, End: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve.Resolve(tt.hits, testCatalog(t))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, domain.KindHit, ve.Kind)
		})
	}
}

func TestResolve_Properties(t *testing.T) {
	cat := testCatalog(t)
	families := []string{"PKS_KS", "PKS", "SAT", "PKS_AT", "PP-binding"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(40)
		hits := make([]domain.HitRecord, n)
		for i := range hits {
			start := rng.Intn(2000)
			hits[i] = hit(families[rng.Intn(len(families))], start, start+1+rng.Intn(300), rng.Float64(), float64(rng.Intn(400)))
		}

		got, err := resolve.Resolve(hits, cat)
		require.NoError(t, err)

		for i := 0; i+1 < len(got); i++ {
			assert.LessOrEqual(t, got[i].End, got[i+1].Start, "domains overlap")
		}

		for _, h := range resolve.Accepted(hits, cat) {
			covered := false
			for _, d := range got {
				if d.Start <= h.Start && h.End <= d.End {
					covered = true
					break
				}
			}
			assert.True(t, covered, "accepted hit %v not covered", h)
		}

		again := make([]domain.HitRecord, len(got))
		for i, d := range got {
			again[i] = d.AsHit()
		}
		twice, err := resolve.Resolve(again, cat)
		require.NoError(t, err)
		assert.Equal(t, got, twice, "resolve is not idempotent")
	}
}

func TestResolveAll(t *testing.T) {
	batch := map[string][]domain.HitRecord{
		"one": {hit("PKS_KS", 0, 100, 0, 500)},
		"two": {hit("SAT", 0, 80, 0, 100), hit("PKS_KS", 100, 500, 0, 500)},
	}

	got, err := resolve.ResolveAll(batch, testCatalog(t))
	require.NoError(t, err)
	assert.Len(t, got["one"], 1)
	assert.Len(t, got["two"], 2)

	batch["bad"] = []domain.HitRecord{hit("PKS", 9, 3, 0, 1)}
	_, err = resolve.ResolveAll(batch, testCatalog(t))

	var qe *resolve.QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "bad", qe.SequenceID)
}
