// Package maintenance keeps the in-memory maintenance log shown on the
// predictive-maintenance panel, and derives the Pareto breakdown of issue
// causes from it.
package maintenance
