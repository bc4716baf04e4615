// Package types defines the shared domain types passed between the telemetry
// source, the metrics evaluator, the scheduler and the HTTP/WebSocket layer.
// These are plain value types with JSON tags; none of them carry behaviour
// beyond field lookup, small helpers and the lenient decoding of limit bounds
// typed into the settings form.
package types
