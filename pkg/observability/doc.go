/*
Package observability turns search lifecycle events into metrics and logs.

Metrics registers Prometheus collectors on a private registry and exposes them
as domain.SearchHooks plus an HTTP handler. LogHooks writes one structured log
record per search.
*/
package observability
