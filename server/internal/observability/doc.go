// Package observability exposes the motor's derived metrics and the
// service's own HTTP traffic as Prometheus collectors.
//
// Metrics owns a private registry so tests and multiple instances never
// collide on the global default registerer. Gauges are refreshed from every
// Snapshot (Metrics implements scheduler.Subscriber); /metrics is served by
// Handler.
package observability
