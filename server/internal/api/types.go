package api

import (
	"time"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/compute"
	"github.com/motortwin/motortwin/server/internal/maintenance"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	// State is "ok" once the first tick has been evaluated, "starting" before.
	State        string        `json:"state"`
	Seq          uint64        `json:"seq"`
	HealthScore  int           `json:"health_score"`
	HealthStatus types.Status  `json:"health_status,omitempty"`
	AlertCount   int           `json:"alert_count"`
	FiringAlerts int           `json:"firing_alerts"`
	Control      types.Control `json:"control"`
}

// HistoryResponse is the payload for GET /api/v1/history.
type HistoryResponse struct {
	Readings []types.Reading `json:"readings"`
}

// SeriesResponse is the payload for GET /api/v1/history?parameter=.
type SeriesResponse struct {
	Parameter  types.Parameter `json:"parameter"`
	Values     []float64       `json:"values"`
	Timestamps []time.Time     `json:"timestamps"`
}

// LimitsResponse is the payload for GET and PUT /api/v1/limits.
type LimitsResponse struct {
	Limits   []types.Limit `json:"limits"`
	Revision string        `json:"revision"`
}

// LimitsRequest is the body of PUT /api/v1/limits. When Revision is set it
// must match the current table revision or the update is rejected with 409.
type LimitsRequest struct {
	Limits   []types.Limit `json:"limits"`
	Revision string        `json:"revision,omitempty"`
}

// LimitResponse is the payload for GET and PUT /api/v1/limits/{parameter}.
type LimitResponse struct {
	Limit    types.Limit `json:"limit"`
	Revision string      `json:"revision"`
}

// QualityResponse is the payload for GET /api/v1/quality.
type QualityResponse struct {
	Parameter types.Parameter      `json:"parameter"`
	Values    []float64            `json:"values"`
	Stats     compute.ControlStats `json:"stats"`
	Limit     *types.Limit         `json:"limit,omitempty"`
}

// HistogramResponse is the payload for GET /api/v1/quality/histogram.
type HistogramResponse struct {
	Parameter types.Parameter   `json:"parameter"`
	Layout    compute.BinLayout `json:"layout"`
	compute.HistogramResult
}

// WhatIfRequest is the body of POST /api/v1/whatif. Increases are
// percentages in [0, 100]. BaseTemperature defaults to the latest motor
// temperature when omitted.
type WhatIfRequest struct {
	RPMIncreasePct  float64  `json:"rpm_increase_pct"`
	LoadIncreasePct float64  `json:"load_increase_pct"`
	PoorLubrication bool     `json:"poor_lubrication"`
	BaseTemperature *float64 `json:"base_temperature,omitempty"`
}

// DiagnosticsResponse is the payload for GET /api/v1/diagnostics.
type DiagnosticsResponse struct {
	Seq   uint64           `json:"seq"`
	Hints []DiagnosticHint `json:"hints"`
}

// MaintenanceResponse is the payload for GET /api/v1/maintenance.
type MaintenanceResponse struct {
	Records              []maintenance.Record `json:"records"`
	TotalDowntimeMinutes float64              `json:"total_downtime_minutes"`
}

// MaintenanceRequest is the body of POST /api/v1/maintenance. Date is
// YYYY-MM-DD; empty means today.
type MaintenanceRequest struct {
	Date            string `json:"date"`
	IssueType       string `json:"issue_type"`
	ActionTaken     string `json:"action_taken"`
	Component       string `json:"component"`
	DowntimeMinutes int    `json:"downtime_minutes"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
