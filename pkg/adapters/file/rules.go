package file

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/rules"
)

//go:embed defaults/rules.yaml
var defaultRules []byte

// DefaultRules returns the embedded default rule document.
func DefaultRules() []byte {
	return append([]byte(nil), defaultRules...)
}

// RuleDocument is the on-disk shape of a rule set. The hierarchy is given
// either nested, or as root names plus a parent → children map.
type RuleDocument struct {
	Rules     []rules.Definition    `json:"rules" yaml:"rules" mapstructure:"rules"`
	Hierarchy []rules.HierarchyNode `json:"hierarchy,omitempty" yaml:"hierarchy,omitempty" mapstructure:"hierarchy"`
	Roots     []string              `json:"roots,omitempty" yaml:"roots,omitempty" mapstructure:"roots"`
	Children  map[string][]string   `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// ParseRules decodes a rule document.
func ParseRules(data []byte, format Format) (*RuleDocument, error) {
	var doc RuleDocument
	if err := decode(data, format, &doc); err != nil {
		return nil, &domain.ValidationError{Kind: domain.KindRule, Reason: err.Error()}
	}
	return &doc, nil
}

// Forest compiles every rule, collecting all failures, then places them.
func (d *RuleDocument) Forest() (*rules.Forest, error) {
	compiled := make([]*rules.Rule, 0, len(d.Rules))
	var errs []error
	for _, def := range d.Rules {
		r, err := rules.NewRule(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled = append(compiled, r)
	}

	hierarchy := d.Hierarchy
	edges := len(d.Roots) > 0 || len(d.Children) > 0
	switch {
	case len(hierarchy) > 0 && edges:
		errs = append(errs, &domain.ValidationError{
			Kind:   domain.KindForest,
			Reason: "hierarchy and roots/children are mutually exclusive",
		})
	case edges:
		h, err := rules.HierarchyFromEdges(d.Roots, d.Children)
		if err != nil {
			errs = append(errs, err)
		}
		hierarchy = h
	}
	if err := domain.Join(errs); err != nil {
		return nil, err
	}
	return rules.NewForest(compiled, hierarchy)
}

// RuleFile implements ports.RuleSource over a rule file on disk. An empty
// path loads the embedded defaults.
type RuleFile struct {
	Path    string
	Catalog rules.Catalog
}

// NewRuleFile creates a rule source. When cat is non-nil, every filter
// family is checked against it on load.
func NewRuleFile(path string, cat rules.Catalog) *RuleFile {
	return &RuleFile{Path: path, Catalog: cat}
}

// LoadForest reads, compiles and validates the rule file.
func (f *RuleFile) LoadForest(ctx context.Context) (*rules.Forest, error) {
	data, format := defaultRules, FormatYAML
	if f.Path != "" {
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file: %w", err)
		}
		data, format = raw, FormatOf(f.Path)
	}

	doc, err := ParseRules(data, format)
	if err != nil {
		return nil, err
	}
	forest, err := doc.Forest()
	if err != nil {
		return nil, err
	}
	if f.Catalog != nil {
		if err := rules.CheckCatalog(forest, f.Catalog); err != nil {
			return nil, err
		}
	}
	return forest, nil
}

// Watch signals whenever the rule file changes on disk. The embedded
// defaults never change, so watching them returns a nil channel.
func (f *RuleFile) Watch(ctx context.Context) (<-chan struct{}, error) {
	if f.Path == "" {
		return nil, nil
	}
	return watchFile(ctx, f.Path)
}
