package grouping_test

import (
	"testing"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/grouping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(id string, paths ...domain.LabelPath) domain.Sequence {
	return domain.Sequence{ID: id, LabelPaths: paths}
}

func sample() []domain.Sequence {
	return []domain.Sequence{
		seq("a", domain.LabelPath{"PKS", "Type I PKS", "HR-PKS"}),
		seq("b", domain.LabelPath{"PKS", "Type I PKS", "NR-PKS"}),
		seq("c", domain.LabelPath{"NRPS", "NRPS-like"}),
		seq("d"),
		seq("e",
			domain.LabelPath{"PKS", "Type I PKS", "HR-PKS"},
			domain.LabelPath{"PKS", "Type I PKS", "PR-PKS"},
			domain.LabelPath{"Hybrid"},
		),
	}
}

func TestGroupByLabel_Index(t *testing.T) {
	ix, _ := grouping.GroupByLabel(sample())

	assert.Equal(t, []string{"a", "b", "e"}, ix["PKS"])
	assert.Equal(t, []string{"a", "e"}, ix["HR-PKS"])
	assert.Equal(t, []string{"c"}, ix["NRPS-like"])
	assert.Equal(t, []string{"e"}, ix["Hybrid"])
	assert.Equal(t, []string{
		"HR-PKS", "Hybrid", "NR-PKS", "NRPS", "NRPS-like", "PKS", "PR-PKS", "Type I PKS",
	}, ix.Labels())
}

func TestGroupByLabel_Hierarchy(t *testing.T) {
	_, h := grouping.GroupByLabel(sample())

	require.Len(t, h.Roots, 3)
	assert.Equal(t, []grouping.Key{
		{Label: "PKS", Depth: 0},
		{Label: "Type I PKS", Depth: 1},
		{Label: "HR-PKS", Depth: 2},
		{Label: "NR-PKS", Depth: 2},
		{Label: "PR-PKS", Depth: 2},
		{Label: "NRPS", Depth: 0},
		{Label: "NRPS-like", Depth: 1},
		{Label: "Hybrid", Depth: 0},
	}, h.NestedKeys())
	assert.Equal(t, 2, h.MaxDepth())
}

func TestGroupByLabel_Empty(t *testing.T) {
	ix, h := grouping.GroupByLabel(nil)
	assert.Empty(t, ix)
	assert.Empty(t, h.NestedKeys())
	assert.Equal(t, -1, h.MaxDepth())
	assert.Empty(t, grouping.AnnotationGroups(h))
}

func TestAnnotationGroups(t *testing.T) {
	_, h := grouping.GroupByLabel(sample())

	groups := grouping.AnnotationGroups(h)
	require.Len(t, groups, 3)
	assert.Equal(t, []grouping.Key{
		{Label: "PR-PKS", Depth: 2},
		{Label: "NR-PKS", Depth: 2},
		{Label: "HR-PKS", Depth: 2},
		{Label: "Type I PKS", Depth: 1},
		{Label: "PKS", Depth: 0},
	}, groups[0])
	assert.Equal(t, []grouping.Key{
		{Label: "NRPS-like", Depth: 1},
		{Label: "NRPS", Depth: 0},
	}, groups[1])
	assert.Equal(t, []grouping.Key{{Label: "Hybrid", Depth: 0}}, groups[2])
}
