package synthaser

import (
	"time"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/grouping"
)

// Query is one input sequence with its already-parsed hit records.
type Query struct {
	ID       string             `json:"id"`
	Residues string             `json:"residues,omitempty"`
	Hits     []domain.HitRecord `json:"hits"`
}

// QueriesFromBatch turns a hit batch keyed by query ID into queries.
func QueriesFromBatch(batch map[string][]domain.HitRecord) []Query {
	out := make([]Query, 0, len(batch))
	for id, hits := range batch {
		out = append(out, Query{ID: id, Hits: hits})
	}
	return out
}

// Report is the outcome of one Run. Sequences are ordered by ID.
type Report struct {
	RunID     string              `json:"run_id"`
	CreatedAt time.Time           `json:"created_at"`
	Sequences []domain.Sequence   `json:"sequences"`
	Index     grouping.LabelIndex `json:"index"`
	Hierarchy *grouping.Hierarchy `json:"hierarchy"`
}

// NewReport groups classified sequences into a report.
func NewReport(runID string, createdAt time.Time, seqs []domain.Sequence) *Report {
	index, hierarchy := grouping.GroupByLabel(seqs)
	return &Report{
		RunID:     runID,
		CreatedAt: createdAt,
		Sequences: seqs,
		Index:     index,
		Hierarchy: hierarchy,
	}
}

// ReportFromResult rebuilds a report from a stored result.
func ReportFromResult(r *domain.Result) *Report {
	return NewReport(r.RunID, r.CreatedAt, r.Sequences)
}

// Result returns the persistable part of the report.
func (r *Report) Result() *domain.Result {
	return &domain.Result{
		RunID:     r.RunID,
		CreatedAt: r.CreatedAt,
		Sequences: r.Sequences,
	}
}

// Classified counts sequences with at least one label path.
func (r *Report) Classified() int {
	n := 0
	for i := range r.Sequences {
		if r.Sequences[i].Classified() {
			n++
		}
	}
	return n
}

// AnnotationGroups returns the observed hierarchy split per root label,
// most specific labels first.
func (r *Report) AnnotationGroups() [][]grouping.Key {
	return grouping.AnnotationGroups(r.Hierarchy)
}
