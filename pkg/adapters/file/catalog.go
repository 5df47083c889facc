package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
)

// CatalogDocument is the on-disk shape of a domain catalog.
type CatalogDocument struct {
	Families []domain.CatalogEntry `json:"families" yaml:"families" mapstructure:"families"`
}

// CatalogFile implements ports.CatalogSource. An empty path yields the
// default catalog.
type CatalogFile struct {
	Path string
}

// NewCatalogFile creates a catalog source for path.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{Path: path}
}

// LoadCatalog reads and validates the catalog file.
func (f *CatalogFile) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if f.Path == "" {
		return catalog.Default(), nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data, FormatOf(f.Path))
}

// ParseCatalog decodes a catalog document and builds the catalog.
func ParseCatalog(data []byte, format Format) (*catalog.Catalog, error) {
	var doc CatalogDocument
	if err := decode(data, format, &doc); err != nil {
		return nil, &domain.ValidationError{Kind: domain.KindCatalog, Reason: err.Error()}
	}
	return catalog.New(doc.Families...)
}
