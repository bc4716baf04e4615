// Package api implements the HTTP REST API for motortwin-server.
//
// New(deps, opts) returns a Handler that serves:
//
//	GET  /api/v1/health               liveness, latest health score and status
//	GET  /api/v1/snapshot             latest evaluated Snapshot
//	GET  /api/v1/history              history window (?parameter= for one series)
//	GET  /api/v1/components           component statuses of the latest tick
//	GET  /api/v1/limits               limit table and its revision
//	PUT  /api/v1/limits               wholesale replacement of the table
//	GET  /api/v1/limits/{parameter}   one limit row; 404 if unknown
//	PUT  /api/v1/limits/{parameter}   single-row edit
//	GET  /api/v1/alerts               firing and recently resolved alerts
//	GET  /api/v1/quality              control chart for ?parameter=
//	GET  /api/v1/quality/histogram    binned counts for ?parameter= (default torque)
//	POST /api/v1/whatif               what-if scenario projection
//	GET  /api/v1/diagnostics          plain-English hints for the latest tick
//	GET  /api/v1/maintenance          maintenance log, newest first
//	POST /api/v1/maintenance          append a maintenance record
//	GET  /api/v1/maintenance/pareto   downtime causes by frequency
//	POST /api/v1/motor/{action}       start | stop | reverse
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 with a JSON error body for a known path and wrong method
//   - Require the API key on mutating routes when auth mode is "apikey"
//
// Routing uses gorilla/mux; CORS and panic recovery come from
// gorilla/handlers. JSON types are defined in types.go.
package api
