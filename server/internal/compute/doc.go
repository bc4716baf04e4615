// Package compute derives the dashboard metrics from a single Reading and the
// current limit table.
//
// Every function here is pure: the same inputs always give the same output,
// except for the estimators that take an explicit *rand.Rand (RUL and failure
// probability), which are reproducible under a seeded source.
//
// classify.go holds the threshold-fraction status rule and the health-score
// to status mapping. score.go computes the 0–100 health score from the six
// monitored parameters. violations.go counts limit breaches. components.go
// derives the per-component statuses, machine status and load percentage.
// predict.go estimates remaining useful life. whatif.go and control.go back
// the what-if and quality-control panels.
//
// Evaluate bundles all of the above into one Result per tick.
package compute
