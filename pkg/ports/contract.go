package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractResult(runID string) *domain.Result {
	return &domain.Result{
		RunID:     runID,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Sequences: []domain.Sequence{
			{
				ID:       "seq1",
				Residues: "MKLV",
				Domains: []domain.Domain{
					{Type: "KS", Family: "PKS_KS", Start: 0, End: 420, EValue: 1e-120, Bitscore: 410.5},
					{Type: "AT", Family: "PKS_AT", Start: 520, End: 830, EValue: 3e-60, Bitscore: 220},
				},
				LabelPaths: []domain.LabelPath{{"PKS", "Type I PKS", "NR-PKS"}},
			},
			{ID: "seq2", Domains: []domain.Domain{}, LabelPaths: []domain.LabelPath{}},
		},
	}
}

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		want := contractResult(runID)
		require.NoError(t, store.Save(ctx, want), "Save should not return error")

		got, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want.RunID, got.RunID)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		require.Len(t, got.Sequences, 2)
		assert.Equal(t, want.Sequences[0].Domains, got.Sequences[0].Domains)
		assert.Equal(t, want.Sequences[0].LabelPaths, got.Sequences[0].LabelPaths)
		assert.False(t, got.Sequences[1].Classified())
	})

	t.Run("Loaded result is a copy", func(t *testing.T) {
		got, err := store.Load(ctx, runID)
		require.NoError(t, err)
		got.Sequences[0].LabelPaths[0][0] = "changed"

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, "PKS", again.Sequences[0].LabelPaths[0][0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractResult(runID)))
		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, contractResult(id1)))
		require.NoError(t, store.Save(ctx, contractResult(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
