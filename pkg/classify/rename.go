package classify

import (
	"slices"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

// ApplyRenames returns a copy of domains with every directive applied in
// order. The input slice is never modified.
//
// A domain of type From becomes To when the nearest following domain of a
// different type is listed in Before, or the nearest preceding domain of a
// different type is listed in After. Each directive decides against the
// order left by the previous one.
func ApplyRenames(domains []domain.Domain, renames []rules.Rename) []domain.Domain {
	working := slices.Clone(domains)
	for _, rn := range renames {
		working = applyRename(working, rn)
	}
	return working
}

func applyRename(domains []domain.Domain, rn rules.Rename) []domain.Domain {
	if len(rn.Before) == 0 && len(rn.After) == 0 {
		return domains
	}

	var hits []int
	for i, d := range domains {
		if d.Type != rn.From {
			continue
		}
		if len(rn.Before) > 0 {
			if next, ok := neighbour(domains, i, 1); ok && slices.Contains(rn.Before, next) {
				hits = append(hits, i)
				continue
			}
		}
		if len(rn.After) > 0 {
			if prev, ok := neighbour(domains, i, -1); ok && slices.Contains(rn.After, prev) {
				hits = append(hits, i)
			}
		}
	}

	for _, i := range hits {
		domains[i].Type = rn.To
	}
	return domains
}

// neighbour finds the type of the nearest domain in direction step whose type
// differs from domains[i].
func neighbour(domains []domain.Domain, i, step int) (string, bool) {
	typ := domains[i].Type
	for j := i + step; j >= 0 && j < len(domains); j += step {
		if domains[j].Type != typ {
			return domains[j].Type, true
		}
	}
	return "", false
}
