package ports

import (
	"context"

	"github.com/aretw0/synthaser/pkg/domain"
)

// ResultStore persists classified batches.
type ResultStore interface {
	// Save persists a result under its RunID, replacing any previous one.
	Save(ctx context.Context, result *domain.Result) error

	// Load retrieves a result by run ID.
	// Returns domain.ErrResultNotFound if it does not exist.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes a result. Deleting a missing run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the stored run IDs.
	List(ctx context.Context) ([]string, error)
}
