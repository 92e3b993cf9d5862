// Package metrics registers Prometheus instrumentation for the
// reconciliation job. The counters are served on /metrics by the admin HTTP
// server and cover run outcomes, per-exit results, restored stock quantities
// and data-integrity skips.
package metrics
