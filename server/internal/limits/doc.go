// Package limits holds the operator-editable limit table: one row per
// telemetry parameter giving its allowed [minimum, maximum] envelope.
//
// The table is read by the scheduler at the start of every tick and written
// by the REST API and config hot reload. Updates replace rows wholesale; the
// table never validates ranges, so an operator can enter an inverted or
// zero-width range and the evaluator copes with it.
package limits
