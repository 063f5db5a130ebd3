// Package metrics defines the observability hooks used by the client stores and
// the dev server, with a no-op default and a Prometheus-backed implementation.
package metrics
