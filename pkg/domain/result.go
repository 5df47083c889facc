package domain

import (
	"slices"
	"time"
)

// Result is one classified batch, as kept by a result store.
type Result struct {
	RunID     string     `json:"run_id"`
	CreatedAt time.Time  `json:"created_at"`
	Sequences []Sequence `json:"sequences"`
}

// Sequence returns the sequence with the given ID.
func (r *Result) Sequence(id string) (*Sequence, bool) {
	for i := range r.Sequences {
		if r.Sequences[i].ID == id {
			return &r.Sequences[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	out := *r
	out.Sequences = make([]Sequence, len(r.Sequences))
	for i, s := range r.Sequences {
		s.Domains = slices.Clone(s.Domains)
		paths := make([]LabelPath, len(s.LabelPaths))
		for j, p := range s.LabelPaths {
			paths[j] = slices.Clone(p)
		}
		if s.LabelPaths == nil {
			paths = nil
		}
		s.LabelPaths = paths
		out.Sequences[i] = s
	}
	return &out
}
