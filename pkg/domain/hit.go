package domain

import (
	"fmt"
	"math"
)

// HitClass distinguishes specific family hits from superfamily hits.
type HitClass string

const (
	// HitSpecific is a hit against a specific conserved family. Only these become Domains.
	HitSpecific HitClass = "specific"
	// HitSuperfamily is a hit against a superfamily cluster (context only).
	HitSuperfamily HitClass = "superfamily"
)

// HitRecord is one family-vs-query alignment reported by the upstream search.
// Coordinates are 0-based and half-open. It is never mutated once produced.
type HitRecord struct {
	Family   string   `json:"family" yaml:"family" mapstructure:"family"`
	Class    HitClass `json:"class" yaml:"class" mapstructure:"class"`
	Start    int      `json:"start" yaml:"start" mapstructure:"start"`
	End      int      `json:"end" yaml:"end" mapstructure:"end"`
	EValue   float64  `json:"evalue" yaml:"evalue" mapstructure:"evalue"`
	Bitscore float64  `json:"bitscore" yaml:"bitscore" mapstructure:"bitscore"`
}

// Validate reports malformed records. Malformed input is a caller bug and is never retried.
func (h HitRecord) Validate() error {
	subject := fmt.Sprintf("%s[%d:%d]", h.Family, h.Start, h.End)
	switch {
	case h.Start < 0:
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "negative start"}
	case h.Start >= h.End:
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "start must be less than end"}
	case !finite(h.EValue):
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "e-value is not a finite number"}
	case !finite(h.Bitscore):
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "bitscore is not a finite number"}
	case h.EValue < 0:
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "negative e-value"}
	case h.Bitscore < 0:
		return &ValidationError{Kind: KindHit, Subject: subject, Reason: "negative bitscore"}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Len returns the span length in residues.
func (h HitRecord) Len() int {
	return h.End - h.Start
}
