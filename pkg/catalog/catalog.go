package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/synthaser/pkg/domain"
	"golang.org/x/text/unicode/norm"
)

// Catalog maps specific family identifiers to their semantic domain type and
// thresholds. It is read-only after construction and safe for concurrent use.
type Catalog struct {
	entries map[string]domain.CatalogEntry
	types   map[string][]string
}

// New builds a catalog from entries. Duplicate families and entries without a
// type are rejected.
func New(entries ...domain.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]domain.CatalogEntry, len(entries)),
		types:   make(map[string][]string),
	}

	var errs []error
	for _, e := range entries {
		e.Family = Normalize(e.Family)
		e.Type = Normalize(e.Type)

		switch {
		case e.Family == "":
			errs = append(errs, &domain.ValidationError{Kind: domain.KindCatalog, Reason: "entry missing family"})
			continue
		case e.Type == "":
			errs = append(errs, &domain.ValidationError{Kind: domain.KindCatalog, Subject: e.Family, Reason: "entry missing type"})
			continue
		case e.MinLength < 0 || e.MinBitscore < 0:
			errs = append(errs, &domain.ValidationError{Kind: domain.KindCatalog, Subject: e.Family, Reason: "negative threshold"})
			continue
		}
		if _, dup := c.entries[e.Family]; dup {
			errs = append(errs, &domain.ValidationError{Kind: domain.KindCatalog, Subject: e.Family, Reason: "duplicate family"})
			continue
		}

		c.entries[e.Family] = e
		c.types[e.Type] = append(c.types[e.Type], e.Family)
	}

	if err := domain.Join(errs); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(entries ...domain.CatalogEntry) *Catalog {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the entry of a family.
func (c *Catalog) Lookup(family string) (domain.CatalogEntry, bool) {
	e, ok := c.entries[Normalize(family)]
	return e, ok
}

// Entry is like Lookup but returns domain.ErrUnknownFamily for absent families.
func (c *Catalog) Entry(family string) (domain.CatalogEntry, error) {
	e, ok := c.Lookup(family)
	if !ok {
		return domain.CatalogEntry{}, fmt.Errorf("%w: %s", domain.ErrUnknownFamily, family)
	}
	return e, nil
}

// Types returns the semantic types known to the catalog, sorted.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.types))
	for t := range c.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Families returns the family identifiers of a type in insertion order.
func (c *Catalog) Families(typ string) []string {
	return append([]string(nil), c.types[Normalize(typ)]...)
}

// Entries returns every entry ordered by type then family.
func (c *Catalog) Entries() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Family < out[j].Family
	})
	return out
}

// Len returns the number of families.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Normalize canonicalises an identifier: NFKC, trimmed, control characters removed.
func Normalize(id string) string {
	s := strings.TrimSpace(norm.NFKC.String(id))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
