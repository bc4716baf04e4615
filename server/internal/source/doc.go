// Package source produces the telemetry readings fed into each tick.
//
// No physical sensors are attached. Generator draws every field
// independently and uniformly from a configured range, which is enough to
// exercise the evaluator and keep the dashboard moving.
package source
