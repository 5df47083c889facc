package cli

import (
	"context"
	"io"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/pkg/adapters/file"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/ports"
)

// HitSource returns the source for path; "-" reads stdin.
func HitSource(path string, stdin io.Reader) ports.HitSource {
	if path == "-" {
		return readerSource{stdin}
	}
	return file.NewHitFile(path)
}

type readerSource struct{ r io.Reader }

func (s readerSource) ReadHits(context.Context) (map[string][]domain.HitRecord, error) {
	return file.DecodeHits(s.r)
}

// Classify reads a hit batch, runs it and writes the report.
func (env *Env) Classify(ctx context.Context, src ports.HitSource, w io.Writer, opts OutputOptions) (*synthaser.Report, error) {
	batch, err := src.ReadHits(ctx)
	if err != nil {
		return nil, err
	}

	report, err := env.Engine.Run(ctx, synthaser.QueriesFromBatch(batch))
	if err != nil {
		return nil, err
	}
	return report, WriteReport(w, report, opts)
}
