/*
Package rules defines classification rules and the forest they are arranged in.

A rule declares an ordered list of domain types. Its expression refers to
those types by zero-based index:

	domains:   [KS, A]
	evaluator: "0 and not 1"

The grammar is deliberately small: integer operands, "and", "or", "not" and
parentheses, with precedence not > and > or. Expressions are compiled when a
rule is built, so a malformed rule set fails before any sequence is touched.

Rules may restrict which specific families count for a type (filters) and may
carry rename directives that are applied to a working copy of the domain order
before the expression is evaluated.
*/
package rules
