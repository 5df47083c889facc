package domain

import (
	"fmt"
	"strings"
)

// Domain is a resolved, semantically typed span in a query sequence.
// Within one sequence, domains are sorted by Start and never overlap.
type Domain struct {
	Type     string  `json:"type" yaml:"type"`
	Family   string  `json:"family" yaml:"family"`
	Start    int     `json:"start" yaml:"start"`
	End      int     `json:"end" yaml:"end"`
	EValue   float64 `json:"evalue" yaml:"evalue"`
	Bitscore float64 `json:"bitscore" yaml:"bitscore"`
}

func (d Domain) String() string {
	return fmt.Sprintf("%s [%s] %d-%d", d.Family, d.Type, d.Start, d.End)
}

// Slice returns the residues covered by the domain, clamped to the sequence.
func (d Domain) Slice(residues string) string {
	start, end := d.Start, d.End
	if start > len(residues) {
		return ""
	}
	if end > len(residues) {
		end = len(residues)
	}
	return residues[start:end]
}

// AsHit converts a resolved domain back into a specific hit record.
func (d Domain) AsHit() HitRecord {
	return HitRecord{
		Family:   d.Family,
		Class:    HitSpecific,
		Start:    d.Start,
		End:      d.End,
		EValue:   d.EValue,
		Bitscore: d.Bitscore,
	}
}

// LabelPath is the ordered list of rule names matched from a forest root down
// to the deepest matching descendant.
type LabelPath []string

func (p LabelPath) String() string {
	return strings.Join(p, " > ")
}

// Leaf returns the most specific label of the path.
func (p LabelPath) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Sequence is one query protein with its resolved domains and classification paths.
type Sequence struct {
	ID         string      `json:"id" yaml:"id"`
	Residues   string      `json:"residues,omitempty" yaml:"residues,omitempty"`
	Domains    []Domain    `json:"domains" yaml:"domains"`
	LabelPaths []LabelPath `json:"labels" yaml:"labels"`
}

// Architecture returns the hyphen separated domain types, e.g. "KS-AT-DH-ER-KR-ACP".
func (s *Sequence) Architecture() string {
	types := make([]string, len(s.Domains))
	for i, d := range s.Domains {
		types[i] = d.Type
	}
	return strings.Join(types, "-")
}

// Labels returns every distinct label carried by the sequence, in path order.
func (s *Sequence) Labels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, path := range s.LabelPaths {
		for _, label := range path {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	return out
}

// Classified reports whether at least one forest root matched.
func (s *Sequence) Classified() bool {
	return len(s.LabelPaths) > 0
}

// Len returns the residue count.
func (s *Sequence) Len() int {
	return len(s.Residues)
}
