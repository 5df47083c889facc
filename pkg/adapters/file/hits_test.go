package file_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/synthaser/pkg/adapters/file"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitFile(t *testing.T) {
	path := write(t, "hits.json", `{
  "seq1": [
    {"family": "PKS_KS", "class": "specific", "start": 3, "end": 420, "evalue": 1e-120, "bitscore": 410.5},
    {"family": "Cond_enzymes", "class": "superfamily", "start": 0, "end": 430, "evalue": 1e-90, "bitscore": 300}
  ],
  "seq2": []
}`)
	batch, err := file.NewHitFile(path).ReadHits(context.Background())
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, domain.HitRecord{
		Family: "PKS_KS", Class: domain.HitSpecific, Start: 3, End: 420, EValue: 1e-120, Bitscore: 410.5,
	}, batch["seq1"][0])
	assert.Equal(t, domain.HitSuperfamily, batch["seq1"][1].Class)
	assert.Empty(t, batch["seq2"])
}

func TestDecodeHits_RejectsUnknownFields(t *testing.T) {
	_, err := file.DecodeHits(strings.NewReader(`{"q": [{"family": "KS", "score": 1}]}`))
	assert.Error(t, err)
}
