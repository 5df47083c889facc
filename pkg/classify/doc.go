// Package classify walks a rule forest against resolved domain architectures.
//
// Every root is evaluated independently. A rule's rename directives are
// applied to a private copy of the domain order before its expression is
// tested; children inherit that copy, siblings never see each other's renames.
// A failed rule prunes its whole subtree. Each matching branch yields one
// label path, ending at the deepest rule that matched.
package classify
