package file_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/synthaser/pkg/adapters/file"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFile(t *testing.T) {
	path := write(t, "catalog.yaml", `
families:
  - {family: PKS_KS, type: KS, min_bitscore: 50}
  - {family: PKS_AT, type: AT, min_length: 120}
`)
	cat, err := file.NewCatalogFile(path).LoadCatalog(context.Background())
	require.NoError(t, err)

	entry, ok := cat.Lookup("PKS_KS")
	require.True(t, ok)
	assert.Equal(t, "KS", entry.Type)
	assert.Equal(t, 50.0, entry.MinBitscore)
	assert.Equal(t, []string{"AT", "KS"}, cat.Types())
}

func TestCatalogFile_JSON(t *testing.T) {
	path := write(t, "catalog.json", `{"families": [{"family": "AMP-binding", "type": "A", "min_length": 300}]}`)
	cat, err := file.NewCatalogFile(path).LoadCatalog(context.Background())
	require.NoError(t, err)

	entry, ok := cat.Lookup("AMP-binding")
	require.True(t, ok)
	assert.Equal(t, 300, entry.MinLength)
}

func TestCatalogFile_Default(t *testing.T) {
	cat, err := file.NewCatalogFile("").LoadCatalog(context.Background())
	require.NoError(t, err)
	_, ok := cat.Lookup("Condensation")
	assert.True(t, ok)
}

func TestCatalogFile_Invalid(t *testing.T) {
	path := write(t, "catalog.yaml", "families:\n  - {family: X}\n")
	_, err := file.NewCatalogFile(path).LoadCatalog(context.Background())
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, domain.KindCatalog, ve.Kind)
}
