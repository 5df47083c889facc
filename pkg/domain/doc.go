/*
Package domain contains the core data model of the synthase pipeline.

It defines the records handed in by upstream collaborators and the values the
pipeline emits. The package is kept pure: no I/O, no logging.

# Key Entities

  - HitRecord: one alignment of a conserved family against a query.
  - Domain: a resolved, typed, non-overlapping span of a query.
  - Sequence: a query with its ordered domains and classification paths.
  - CatalogEntry: the semantic type and thresholds of a specific family.
*/
package domain
