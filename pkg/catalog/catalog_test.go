package catalog_test

import (
	"errors"
	"testing"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Lookup(t *testing.T) {
	c, err := catalog.New(
		domain.CatalogEntry{Family: "PKS_KS", Type: "KS", MinLength: 400, MinBitscore: 120},
		domain.CatalogEntry{Family: " PKS_AT\t", Type: "AT"},
	)
	require.NoError(t, err)

	e, ok := c.Lookup("PKS_KS")
	require.True(t, ok)
	assert.Equal(t, "KS", e.Type)
	assert.Equal(t, 120.0, e.MinBitscore)

	e, ok = c.Lookup("PKS_AT")
	require.True(t, ok, "identifiers are trimmed on insert")
	assert.Equal(t, "AT", e.Type)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestNew_FullWidthIdentifiersNormalised(t *testing.T) {
	c, err := catalog.New(domain.CatalogEntry{Family: "ＰＫＳ_ＫＳ", Type: "KS"})
	require.NoError(t, err)

	_, ok := c.Lookup("PKS_KS")
	assert.True(t, ok)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.CatalogEntry
		errs    int
	}{
		{"missing family", []domain.CatalogEntry{{Type: "KS"}}, 1},
		{"missing type", []domain.CatalogEntry{{Family: "PKS"}}, 1},
		{"negative threshold", []domain.CatalogEntry{{Family: "PKS", Type: "KS", MinBitscore: -1}}, 1},
		{"duplicates and missing type", []domain.CatalogEntry{
			{Family: "PKS", Type: "KS"},
			{Family: "PKS", Type: "KS"},
			{Family: "X"},
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.entries...)
			require.Error(t, err)

			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve))

			var agg *domain.AggregateError
			if tt.errs > 1 {
				require.True(t, errors.As(err, &agg))
				assert.Len(t, agg.Errors, tt.errs)
			}
		})
	}
}

func TestEntry_UnknownFamily(t *testing.T) {
	c := catalog.Default()
	_, err := c.Entry("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestDefault(t *testing.T) {
	c := catalog.Default()

	assert.Contains(t, c.Types(), "KS")
	assert.Contains(t, c.Types(), "ACP")
	assert.Equal(t, []string{"A_NRPS", "AMP-binding"}, c.Families("A"))

	e, ok := c.Lookup("Condensation")
	require.True(t, ok)
	assert.Equal(t, "C", e.Type)

	entries := c.Entries()
	assert.Len(t, entries, c.Len())
	assert.Equal(t, "A", entries[0].Type)
}
