package dsl

import "github.com/aretw0/synthaser/pkg/rules"

// RuleBuilder provides a fluent API for configuring a rule.
type RuleBuilder struct {
	def     rules.Definition
	parent  string
	builder *Builder
}

// Domains declares the domain types the expression refers to, by index.
func (r *RuleBuilder) Domains(types ...string) *RuleBuilder {
	r.def.Domains = append(r.def.Domains, types...)
	return r
}

// When sets the boolean expression, e.g. "0 and not 1".
func (r *RuleBuilder) When(expr string) *RuleBuilder {
	r.def.Evaluator = expr
	return r
}

// Filter restricts which families count as a match for a domain type.
func (r *RuleBuilder) Filter(typ string, families ...string) *RuleBuilder {
	if r.def.Filters == nil {
		r.def.Filters = make(map[string][]string)
	}
	r.def.Filters[typ] = append(r.def.Filters[typ], families...)
	return r
}

// Rename adds a rename directive. Use Before and After to give its conditions.
func (r *RuleBuilder) Rename(from, to string) *RuleBuilder {
	r.def.Renames = append(r.def.Renames, rules.Rename{From: from, To: to})
	return r
}

// Before adds following-neighbour types to the last rename directive.
func (r *RuleBuilder) Before(types ...string) *RuleBuilder {
	if n := len(r.def.Renames); n > 0 {
		r.def.Renames[n-1].Before = append(r.def.Renames[n-1].Before, types...)
	}
	return r
}

// After adds preceding-neighbour types to the last rename directive.
func (r *RuleBuilder) After(types ...string) *RuleBuilder {
	if n := len(r.def.Renames); n > 0 {
		r.def.Renames[n-1].After = append(r.def.Renames[n-1].After, types...)
	}
	return r
}

// Under places the rule as a child of parent.
func (r *RuleBuilder) Under(parent string) *RuleBuilder {
	r.parent = parent
	return r
}

// Add is a shortcut to declare the next rule on the same builder.
func (r *RuleBuilder) Add(name string) *RuleBuilder {
	return r.builder.Add(name)
}
