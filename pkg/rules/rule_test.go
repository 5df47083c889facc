package rules_test

import (
	"errors"
	"testing"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/resolve"
	"github.com/aretw0/synthaser/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule_Validation(t *testing.T) {
	tests := []struct {
		name string
		def  rules.Definition
	}{
		{"missing name", rules.Definition{Domains: []string{"KS"}, Evaluator: "0"}},
		{"no domains", rules.Definition{Name: "R", Evaluator: "0"}},
		{"duplicate type", rules.Definition{Name: "R", Domains: []string{"KS", "KS"}, Evaluator: "0"}},
		{"index out of range", rules.Definition{Name: "R", Domains: []string{"KS"}, Evaluator: "0 or 1"}},
		{"unknown operator", rules.Definition{Name: "R", Domains: []string{"KS"}, Evaluator: "0 nand 0"}},
		{"filter on undeclared type", rules.Definition{
			Name: "R", Domains: []string{"KS"}, Evaluator: "0",
			Filters: map[string][]string{"AT": {"PKS_AT"}},
		}},
		{"empty filter", rules.Definition{
			Name: "R", Domains: []string{"KS"}, Evaluator: "0",
			Filters: map[string][]string{"KS": {}},
		}},
		{"blank filter family", rules.Definition{
			Name: "R", Domains: []string{"KS"}, Evaluator: "0",
			Filters: map[string][]string{"KS": {" \t"}},
		}},
		{"rename without target", rules.Definition{
			Name: "R", Domains: []string{"KS"}, Evaluator: "0",
			Renames: []rules.Rename{{From: "ACP"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.NewRule(tt.def)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, domain.KindRule, ve.Kind)
		})
	}
}

func TestRule_FilterRestrictsPresence(t *testing.T) {
	r := rules.MustRule(rules.Definition{
		Name:      "Type I PKS",
		Domains:   []string{"KS"},
		Evaluator: "0",
		Filters:   map[string][]string{"KS": {"PKS", "PKS_KS"}},
	})

	typeIII := []domain.Domain{{Type: "KS", Family: "CHS_like", Start: 0, End: 300}}
	assert.False(t, r.Evaluate(r.Present(typeIII)))

	typeI := []domain.Domain{{Type: "KS", Family: "PKS_KS", Start: 0, End: 300}}
	assert.True(t, r.Evaluate(r.Present(typeI)))

	assert.True(t, r.HasFilter("KS"))
	assert.False(t, r.Counts(domain.Domain{Type: "AT", Family: "PKS_AT"}), "undeclared types never count")
}

func TestRule_DefinitionIsCopied(t *testing.T) {
	def := rules.Definition{Name: "R", Domains: []string{"KS", "AT"}, Evaluator: "0 and 1"}
	r := rules.MustRule(def)

	def.Domains[0] = "A"
	assert.Equal(t, []string{"KS", "AT"}, r.Domains())

	got := r.Domains()
	got[1] = "X"
	assert.Equal(t, []string{"KS", "AT"}, r.Domains())
	assert.Equal(t, "0 and 1", r.Expression())
}

func TestRule_Readable(t *testing.T) {
	r := rules.MustRule(rules.Definition{Name: "PKS", Domains: []string{"KS", "A", "C"}, Evaluator: "0 and not (1 or 2)"})
	assert.Equal(t, "(KS and not (A or C))", r.Readable())
}

func TestRule_FilterFamiliesAreNormalised(t *testing.T) {
	cat := catalog.MustNew(domain.CatalogEntry{Family: "PKS_KS", Type: "KS"})
	r := rules.MustRule(rules.Definition{
		Name:      "T1",
		Domains:   []string{"KS"},
		Evaluator: "0",
		Filters:   map[string][]string{"KS": {" PKS_KS"}},
	})
	f, err := rules.NewForest([]*rules.Rule{r}, nil)
	require.NoError(t, err)
	require.NoError(t, rules.CheckCatalog(f, cat))

	domains, err := resolve.Resolve([]domain.HitRecord{
		{Family: "PKS_KS", Class: domain.HitSpecific, Start: 0, End: 10, Bitscore: 200},
	}, cat)
	require.NoError(t, err)
	require.Len(t, domains, 1)

	assert.True(t, r.Counts(domains[0]))
	assert.True(t, r.Evaluate(r.Present(domains)))
}
