package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/grouping"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []domain.Sequence {
	return []domain.Sequence{
		{
			ID: "seq1",
			Domains: []domain.Domain{
				{Type: "KS", Start: 0, End: 400},
				{Type: "AT", Start: 450, End: 800},
				{Type: "ACP", Start: 900, End: 970},
			},
			LabelPaths: []domain.LabelPath{{"PKS", "Type I PKS", "NR-PKS"}},
		},
		{ID: "seq|2"},
	}
}

func TestArchitecture_Ascii(t *testing.T) {
	seqs := sample()
	assert.Equal(t, "KS-AT-ACP", Architecture(termenv.Ascii, &seqs[0]))
	assert.Equal(t, "", Architecture(termenv.Ascii, &seqs[1]))
}

func TestArchitecture_Colours(t *testing.T) {
	seqs := sample()
	got := Architecture(termenv.TrueColor, &seqs[0])
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "KS")
}

func TestColorFor_Stable(t *testing.T) {
	assert.Equal(t, colorFor("XYZ"), colorFor("XYZ"))
	assert.Equal(t, "#f87171", colorFor("KS"))
}

func TestSummary(t *testing.T) {
	seqs := sample()
	ix, h := grouping.GroupByLabel(seqs)

	md := Summary("run-1", seqs, ix, h)
	assert.Contains(t, md, "# Run run-1")
	assert.Contains(t, md, "2 sequences, 1 classified.")
	assert.Contains(t, md, "| seq1 | KS-AT-ACP | PKS > Type I PKS > NR-PKS |")
	assert.Contains(t, md, `| seq\|2 | - | _unclassified_ |`)
	assert.Contains(t, md, "- **PKS** (1)\n  - **Type I PKS** (1)\n    - **NR-PKS** (1)\n")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(80)
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
