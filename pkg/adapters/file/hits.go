package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/synthaser/pkg/domain"
)

// HitFile implements ports.HitSource over a JSON document mapping query IDs
// to their hit records:
//
//	{"seq1": [{"family": "PKS_KS", "class": "specific", "start": 3, "end": 420, "evalue": 1e-120, "bitscore": 410.5}]}
type HitFile struct {
	Path string
}

// NewHitFile creates a hit source for path. "-" reads standard input.
func NewHitFile(path string) *HitFile {
	return &HitFile{Path: path}
}

// ReadHits decodes the whole document.
func (f *HitFile) ReadHits(ctx context.Context) (map[string][]domain.HitRecord, error) {
	if f.Path == "-" {
		return DecodeHits(os.Stdin)
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hit file: %w", err)
	}
	defer fh.Close()
	return DecodeHits(fh)
}

// DecodeHits reads a hit document from r.
func DecodeHits(r io.Reader) (map[string][]domain.HitRecord, error) {
	var batch map[string][]domain.HitRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode hits: %w", err)
	}
	return batch, nil
}
