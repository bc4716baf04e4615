// Package scheduler drives the evaluation loop.
//
// A Scheduler owns the limit table, the history window, the telemetry source
// and the random source used by the estimators. Every tick it draws a
// reading, appends it to history, evaluates it against the limit table as
// it stood when the tick began, publishes the resulting Snapshot and then
// notifies subscribers (alerting, metrics, WebSocket fan-out).
//
// Ticks and limit mutations are serialised on one lock, so an edit made
// while a tick is running takes effect on the next tick and no reader ever
// sees a half-evaluated state.
package scheduler
