/*
Package ports defines the driven ports (interfaces) of the synthaser pipeline.

These interfaces decouple the pure classification core from the places rule
sets, catalogs, hit batches and results come from or go to.

# Key Interfaces

  - RuleSource: loads a validated rule forest (e.g. from a YAML file or the embedded defaults).
  - CatalogSource: loads a domain catalog.
  - HitSource: supplies already-parsed hit records per query.
  - ResultStore: persists classified batches by run ID (memory, file, Redis).
*/
package ports
