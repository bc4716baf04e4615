// Package history keeps the sliding window of recent readings that backs
// the dashboard's trend charts.
//
// The window is a fixed-capacity ring: once full, every Append evicts the
// oldest reading, so its length stays constant for the life of the process.
package history
