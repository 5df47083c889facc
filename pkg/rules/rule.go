package rules

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthaser/pkg/catalog"
	"github.com/aretw0/synthaser/pkg/domain"
)

// Rename moves domains of type From to type To when the nearest neighbouring
// domain of a different type is in Before (following) or After (preceding).
type Rename struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	To     string   `json:"to" yaml:"to" mapstructure:"to"`
	Before []string `json:"before,omitempty" yaml:"before,omitempty" mapstructure:"before"`
	After  []string `json:"after,omitempty" yaml:"after,omitempty" mapstructure:"after"`
}

// Definition is the uncompiled form of a rule, as produced by a rule-file loader.
type Definition struct {
	Name      string              `json:"name" yaml:"name" mapstructure:"name"`
	Domains   []string            `json:"domains" yaml:"domains" mapstructure:"domains"`
	Evaluator string              `json:"evaluator" yaml:"evaluator" mapstructure:"evaluator"`
	Filters   map[string][]string `json:"filters,omitempty" yaml:"filters,omitempty" mapstructure:"filters"`
	Renames   []Rename            `json:"renames,omitempty" yaml:"renames,omitempty" mapstructure:"renames"`
}

// Rule is a named boolean test over domain-type presence. Immutable once built.
type Rule struct {
	def     Definition
	expr    Expr
	index   map[string]int
	filters map[string]map[string]bool
}

// NewRule validates and compiles a definition.
func NewRule(def Definition) (*Rule, error) {
	invalid := func(format string, args ...any) error {
		return &domain.ValidationError{Kind: domain.KindRule, Subject: def.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(def.Name) == "" {
		return nil, invalid("missing name")
	}
	if len(def.Domains) == 0 {
		return nil, invalid("no domain types declared")
	}

	r := &Rule{
		def:     cloneDefinition(def),
		index:   make(map[string]int, len(def.Domains)),
		filters: make(map[string]map[string]bool, len(def.Filters)),
	}

	for i, typ := range def.Domains {
		if typ == "" {
			return nil, invalid("empty domain type at index %d", i)
		}
		if _, dup := r.index[typ]; dup {
			return nil, invalid("domain type %q declared twice", typ)
		}
		r.index[typ] = i
	}

	expr, err := Compile(def.Evaluator, len(def.Domains))
	if err != nil {
		return nil, invalid("%v", err)
	}
	r.expr = expr

	for typ, families := range def.Filters {
		if _, ok := r.index[typ]; !ok {
			return nil, invalid("filter on undeclared domain type %q", typ)
		}
		if len(families) == 0 {
			return nil, invalid("empty family filter for %q", typ)
		}
		set := make(map[string]bool, len(families))
		for _, f := range families {
			fam := catalog.Normalize(f)
			if fam == "" {
				return nil, invalid("empty family in filter for %q", typ)
			}
			set[fam] = true
		}
		r.filters[typ] = set
	}

	for i, rn := range def.Renames {
		if rn.From == "" || rn.To == "" {
			return nil, invalid("rename %d needs both from and to", i)
		}
	}

	return r, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(def Definition) *Rule {
	r, err := NewRule(def)
	if err != nil {
		panic(err)
	}
	return r
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.Domains = append([]string(nil), def.Domains...)
	out.Renames = make([]Rename, len(def.Renames))
	for i, rn := range def.Renames {
		out.Renames[i] = Rename{
			From:   rn.From,
			To:     rn.To,
			Before: append([]string(nil), rn.Before...),
			After:  append([]string(nil), rn.After...),
		}
	}
	if def.Filters != nil {
		out.Filters = make(map[string][]string, len(def.Filters))
		for k, v := range def.Filters {
			out.Filters[k] = append([]string(nil), v...)
		}
	}
	return out
}

// Name returns the rule's unique name.
func (r *Rule) Name() string { return r.def.Name }

// Domains returns the declared domain types in operand order.
func (r *Rule) Domains() []string { return append([]string(nil), r.def.Domains...) }

// Expression returns the source expression.
func (r *Rule) Expression() string { return r.def.Evaluator }

// Renames returns the rename directives in declaration order.
func (r *Rule) Renames() []Rename { return cloneDefinition(r.def).Renames }

// Readable returns the compiled expression with operands replaced by their
// domain types, fully parenthesised, e.g. "(KS and not A)".
func (r *Rule) Readable() string { return r.expr.format(r.def.Domains) }

// Definition returns a copy of the uncompiled definition.
func (r *Rule) Definition() Definition { return cloneDefinition(r.def) }

// HasFilter reports whether a family filter is declared for typ.
func (r *Rule) HasFilter(typ string) bool {
	_, ok := r.filters[typ]
	return ok
}

// Counts reports whether a domain counts towards the presence of its type:
// the type must be declared, and must pass the family filter when one exists.
// Filter families are held in catalog-normalised form.
func (r *Rule) Counts(d domain.Domain) bool {
	if _, ok := r.index[d.Type]; !ok {
		return false
	}
	set, filtered := r.filters[d.Type]
	return !filtered || set[d.Family]
}

// Evaluate tests the expression against a set of present types.
func (r *Rule) Evaluate(present map[string]bool) bool {
	operands := make([]bool, len(r.def.Domains))
	for i, typ := range r.def.Domains {
		operands[i] = present[typ]
	}
	return r.expr.Eval(operands)
}

// Present builds the presence set of this rule from a domain order.
func (r *Rule) Present(domains []domain.Domain) map[string]bool {
	present := make(map[string]bool, len(r.def.Domains))
	for _, d := range domains {
		if r.Counts(d) {
			present[d.Type] = true
		}
	}
	return present
}

// Families lists every family referenced by the rule's filters.
func (r *Rule) Families() map[string][]string {
	return cloneDefinition(r.def).Filters
}
