// Package alerts turns per-tick limit breaches and rule conditions into
// alerts with a firing/resolved lifecycle, and delivers each transition to
// Teams, Slack or generic HTTP webhooks.
//
// Every monitored parameter outside its limit fires one alert keyed by the
// parameter; the alert resolves on the first tick the value is back inside.
// Configured rules ("health_score < 60") are evaluated against the same
// snapshot and follow the same lifecycle.
package alerts
