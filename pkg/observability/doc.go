/*
Package observability binds the pipeline lifecycle hooks to Prometheus metrics
and structured logs.

Metrics are registered on a private registry so several engines can coexist
in one process; expose them with Metrics.Handler.
*/
package observability
