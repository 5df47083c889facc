package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Forest(t *testing.T) {
	b := New()

	b.Add("PKS").Domains("KS", "A").When("0 and not 1")
	b.Add("NRPS").Domains("KS", "A").When("1 and not 0").
		Rename("ACP", "T").After("A", "C").
		Rename("TR", "R").After("T")
	b.Add("Type I PKS").Under("PKS").
		Domains("KS").When("0").
		Filter("KS", "PKS_KS", "PKS")
	b.Add("HR-PKS").Under("Type I PKS").Domains("ER", "KR", "DH").When("0 and 1 and 2")
	b.Add("Type III PKS").Under("PKS").Domains("KS").When("0").Filter("KS", "CHS_like")

	f, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []rules.HierarchyNode{
		{Name: "PKS", Children: []rules.HierarchyNode{
			{Name: "Type I PKS", Children: []rules.HierarchyNode{{Name: "HR-PKS"}}},
			{Name: "Type III PKS"},
		}},
		{Name: "NRPS"},
	}, f.Hierarchy())

	n, ok := f.Lookup("NRPS")
	require.True(t, ok)
	assert.Equal(t, []rules.Rename{
		{From: "ACP", To: "T", After: []string{"A", "C"}},
		{From: "TR", To: "R", After: []string{"T"}},
	}, n.Rule.Renames())

	n, ok = f.Lookup("Type I PKS")
	require.True(t, ok)
	assert.True(t, n.Rule.HasFilter("KS"))
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New()
	first := b.Add("PKS").Domains("KS")
	assert.Same(t, first, b.Add("PKS"))

	f := b.Add("PKS").When("0").builder.MustBuild()
	assert.Equal(t, 1, f.Len())
}

func TestBuilder_CollectsRuleErrors(t *testing.T) {
	b := New()
	b.Add("bad index").Domains("KS").When("0 and 1")
	b.Add("no domains").When("0")
	b.Add("fine").Domains("A").When("0")

	_, err := b.Build()
	var agg *domain.AggregateError
	require.True(t, errors.As(err, &agg))
	assert.Len(t, agg.Errors, 2)
}

func TestBuilder_UnknownParent(t *testing.T) {
	b := New()
	b.Add("orphan").Under("ghost").Domains("KS").When("0")

	_, err := b.Build()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "ghost", ve.Subject)
}
