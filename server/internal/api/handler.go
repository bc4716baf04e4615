package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/alerts"
	"github.com/motortwin/motortwin/server/internal/auth"
	"github.com/motortwin/motortwin/server/internal/compute"
	"github.com/motortwin/motortwin/server/internal/maintenance"
	"github.com/motortwin/motortwin/server/internal/scheduler"
)

const (
	prefix = "/api/v1"

	// maxBodyBytes caps request bodies on mutating routes.
	maxBodyBytes = 1 << 20
)

// Deps are the components the API reads from and mutates.
type Deps struct {
	Scheduler   *scheduler.Scheduler
	Alerts      *alerts.Engine
	Maintenance *maintenance.Log
}

// Options configures authentication, CORS and instrumentation.
type Options struct {
	AuthMode    string
	AuthHeader  string
	AuthKey     string
	CORSOrigins []string

	// Middleware wraps every matched route, e.g. request metrics.
	Middleware []mux.MiddlewareFunc
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	sched *scheduler.Scheduler
	alert *alerts.Engine
	maint *maintenance.Log

	router  *mux.Router
	protect func(http.Handler) http.Handler
	handler http.Handler
}

// New creates a Handler wired to deps and registers all routes.
func New(deps Deps, opts Options) *Handler {
	h := &Handler{
		sched:   deps.Scheduler,
		alert:   deps.Alerts,
		maint:   deps.Maintenance,
		router:  mux.NewRouter(),
		protect: auth.APIKey(opts.AuthMode, opts.AuthHeader, opts.AuthKey),
	}

	r := h.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	for _, mw := range opts.Middleware {
		r.Use(mw)
	}

	r.HandleFunc(prefix+"/health", h.health).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/snapshot", h.snapshot).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/history", h.history).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/components", h.components).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/limits", h.listLimits).Methods(http.MethodGet)
	r.Handle(prefix+"/limits", h.protect(http.HandlerFunc(h.replaceLimits))).Methods(http.MethodPut)
	r.HandleFunc(prefix+"/limits/{parameter}", h.getLimit).Methods(http.MethodGet)
	r.Handle(prefix+"/limits/{parameter}", h.protect(http.HandlerFunc(h.setLimit))).Methods(http.MethodPut)
	r.HandleFunc(prefix+"/alerts", h.alerts).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/quality", h.quality).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/quality/histogram", h.histogram).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/whatif", h.whatIf).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/diagnostics", h.diagnostics).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/maintenance", h.listMaintenance).Methods(http.MethodGet)
	r.Handle(prefix+"/maintenance", h.protect(http.HandlerFunc(h.addMaintenance))).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/maintenance/pareto", h.pareto).Methods(http.MethodGet)
	r.Handle(prefix+"/motor/{action:start|stop|reverse}", h.protect(http.HandlerFunc(h.motor))).Methods(http.MethodPost)

	allowedHeaders := []string{"Content-Type"}
	if opts.AuthHeader != "" {
		allowedHeaders = append(allowedHeaders, opts.AuthHeader)
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders(allowedHeaders),
	)
	h.handler = cors(handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(false),
	)(r))

	return h
}

// Mount registers an extra GET endpoint on the router, such as the
// WebSocket stream or the metrics exposition.
func (h *Handler) Mount(path string, handler http.Handler) {
	h.router.Handle(path, handler).Methods(http.MethodGet)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health. It always answers 200 so it can serve
// as a liveness check; State reports whether a tick has been evaluated yet.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		State:   "starting",
		Control: h.sched.Control(),
	}
	if h.alert != nil {
		resp.FiringAlerts = h.alert.FiringCount()
	}
	if snap, ok := h.sched.Latest(); ok {
		resp.State = "ok"
		resp.Seq = snap.Seq
		resp.HealthScore = snap.HealthScore
		resp.HealthStatus = snap.HealthStatus
		resp.AlertCount = snap.AlertCount
	}
	jsonResp(w, http.StatusOK, resp)
}

// snapshot returns GET /api/v1/snapshot, the latest evaluated tick.
func (h *Handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.latest(w)
	if !ok {
		return
	}
	jsonResp(w, http.StatusOK, snap)
}

// history returns GET /api/v1/history, either the whole window or, with
// ?parameter=, one parameter's series.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	if p := r.URL.Query().Get("parameter"); p != "" {
		param := types.Parameter(p)
		if !param.Known() {
			jsonErr(w, http.StatusNotFound, fmt.Sprintf("unknown parameter %q", p))
			return
		}
		values, stamps := h.sched.Series(param)
		jsonResp(w, http.StatusOK, SeriesResponse{Parameter: param, Values: values, Timestamps: stamps})
		return
	}
	jsonResp(w, http.StatusOK, HistoryResponse{Readings: h.sched.History()})
}

// components returns GET /api/v1/components for the latest tick.
func (h *Handler) components(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.latest(w)
	if !ok {
		return
	}
	jsonResp(w, http.StatusOK, snap.Components)
}

// listLimits returns GET /api/v1/limits.
func (h *Handler) listLimits(w http.ResponseWriter, _ *http.Request) {
	rows, rev := h.sched.Limits()
	jsonResp(w, http.StatusOK, LimitsResponse{Limits: rows, Revision: rev})
}

// replaceLimits handles PUT /api/v1/limits. The body replaces the table
// wholesale; rows absent from the body are removed. A non-empty revision
// is compared and swapped atomically so concurrent writers cannot both win.
func (h *Handler) replaceLimits(w http.ResponseWriter, r *http.Request) {
	var req LimitsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	for i, l := range req.Limits {
		if l.Parameter == "" {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("limits[%d]: parameter is required", i))
			return
		}
	}
	if req.Revision == "" {
		h.sched.UpdateLimits(req.Limits)
	} else if current, ok := h.sched.UpdateLimitsIf(req.Revision, req.Limits); !ok {
		jsonErr(w, http.StatusConflict, "limits changed since revision "+req.Revision+", now "+current)
		return
	}
	rows, rev := h.sched.Limits()
	jsonResp(w, http.StatusOK, LimitsResponse{Limits: rows, Revision: rev})
}

// getLimit returns GET /api/v1/limits/{parameter}.
func (h *Handler) getLimit(w http.ResponseWriter, r *http.Request) {
	p := types.Parameter(mux.Vars(r)["parameter"])
	l, ok := h.sched.Limit(p)
	if !ok {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("no limit for parameter %q", p))
		return
	}
	_, rev := h.sched.Limits()
	jsonResp(w, http.StatusOK, LimitResponse{Limit: l, Revision: rev})
}

// setLimit handles PUT /api/v1/limits/{parameter}. The path names the row;
// a parameter in the body, if present, must agree with it.
func (h *Handler) setLimit(w http.ResponseWriter, r *http.Request) {
	p := types.Parameter(mux.Vars(r)["parameter"])
	if !p.Known() {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("unknown parameter %q", p))
		return
	}
	var l types.Limit
	if !decodeBody(w, r, &l) {
		return
	}
	if l.Parameter != "" && l.Parameter != p {
		jsonErr(w, http.StatusBadRequest, fmt.Sprintf("body parameter %q does not match path %q", l.Parameter, p))
		return
	}
	l.Parameter = p

	rev := h.sched.SetLimit(l)
	jsonResp(w, http.StatusOK, LimitResponse{Limit: l, Revision: rev})
}

// alerts returns GET /api/v1/alerts.
func (h *Handler) alerts(w http.ResponseWriter, _ *http.Request) {
	if h.alert == nil {
		jsonResp(w, http.StatusOK, []*alerts.Alert{})
		return
	}
	jsonResp(w, http.StatusOK, h.alert.Active())
}

// quality returns GET /api/v1/quality: control chart statistics for one
// parameter over the history window. Defaults to motor temperature.
func (h *Handler) quality(w http.ResponseWriter, r *http.Request) {
	param := types.MotorTemperature
	if p := r.URL.Query().Get("parameter"); p != "" {
		param = types.Parameter(p)
	}
	if !param.Known() {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("unknown parameter %q", param))
		return
	}

	values, _ := h.sched.Series(param)
	resp := QualityResponse{
		Parameter: param,
		Values:    values,
		Stats:     compute.ControlChart(values),
	}
	if l, ok := h.sched.Limit(param); ok {
		resp.Limit = &l
	}
	jsonResp(w, http.StatusOK, resp)
}

// histogram returns GET /api/v1/quality/histogram: binned counts of one
// parameter over the history window. Torque, the default, uses the
// dashboard's fixed 5 Nm bins; other parameters split their limit range
// (or the observed span) into seven bins. lower, width and bins override
// the layout.
func (h *Handler) histogram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	param := types.Torque
	if p := q.Get("parameter"); p != "" {
		param = types.Parameter(p)
	}
	if !param.Known() {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("unknown parameter %q", param))
		return
	}

	values, _ := h.sched.Series(param)
	layout := h.defaultLayout(param, values)
	for _, f := range []struct {
		key string
		dst *float64
	}{{"lower", &layout.Lower}, {"width", &layout.Width}} {
		if raw := q.Get(f.key); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				jsonErr(w, http.StatusBadRequest, fmt.Sprintf("%s: %q is not a number", f.key, raw))
				return
			}
			*f.dst = v
		}
	}
	if raw := q.Get("bins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("bins: %q is not an integer", raw))
			return
		}
		layout.Count = n
	}
	if err := layout.Validate(); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	jsonResp(w, http.StatusOK, HistogramResponse{
		Parameter:       param,
		Layout:          layout,
		HistogramResult: compute.Histogram(values, layout),
	})
}

func (h *Handler) defaultLayout(p types.Parameter, values []float64) compute.BinLayout {
	const bins = 7
	if p == types.Torque {
		return compute.TorqueBins
	}
	if l, ok := h.sched.Limit(p); ok && l.Maximum > l.Minimum {
		return compute.LayoutFor(l.Minimum, l.Maximum, bins)
	}
	if len(values) == 0 {
		return compute.LayoutFor(0, 0, bins)
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return compute.LayoutFor(lo, hi, bins)
}

// whatIf handles POST /api/v1/whatif.
func (h *Handler) whatIf(w http.ResponseWriter, r *http.Request) {
	var req WhatIfRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validatePct("rpm_increase_pct", req.RPMIncreasePct); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePct("load_increase_pct", req.LoadIncreasePct); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	in := compute.WhatIfInput{
		RPMIncreasePct:  req.RPMIncreasePct,
		LoadIncreasePct: req.LoadIncreasePct,
		PoorLubrication: req.PoorLubrication,
	}
	switch {
	case req.BaseTemperature != nil:
		in.BaseTemperature = *req.BaseTemperature
	default:
		if snap, ok := h.sched.Latest(); ok {
			in.BaseTemperature = snap.Reading.MotorTemperature
		}
	}
	jsonResp(w, http.StatusOK, compute.WhatIf(in))
}

// diagnostics returns GET /api/v1/diagnostics for the latest tick.
func (h *Handler) diagnostics(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.latest(w)
	if !ok {
		return
	}
	rows, _ := h.sched.Limits()
	jsonResp(w, http.StatusOK, DiagnosticsResponse{
		Seq:   snap.Seq,
		Hints: computeDiagnostics(snap, rows),
	})
}

// listMaintenance returns GET /api/v1/maintenance.
func (h *Handler) listMaintenance(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, MaintenanceResponse{
		Records:              h.maint.List(),
		TotalDowntimeMinutes: h.maint.TotalDowntime().Minutes(),
	})
}

// addMaintenance handles POST /api/v1/maintenance.
func (h *Handler) addMaintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec := maintenance.Record{
		IssueType:       req.IssueType,
		ActionTaken:     req.ActionTaken,
		Component:       req.Component,
		DowntimeMinutes: req.DowntimeMinutes,
	}
	if req.Date != "" {
		d, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("date %q: want YYYY-MM-DD", req.Date))
			return
		}
		rec.Date = d
	}

	saved, err := h.maint.Add(rec)
	switch {
	case errors.Is(err, maintenance.ErrInvalid):
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("api: add maintenance record", "err", err)
		jsonErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResp(w, http.StatusCreated, saved)
}

// pareto returns GET /api/v1/maintenance/pareto.
func (h *Handler) pareto(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, h.maint.Pareto())
}

// motor handles POST /api/v1/motor/{action}.
func (h *Handler) motor(w http.ResponseWriter, r *http.Request) {
	var c types.Control
	switch action := mux.Vars(r)["action"]; action {
	case "start":
		c = h.sched.SetRunning(true)
	case "stop":
		c = h.sched.SetRunning(false)
	case "reverse":
		c = h.sched.ToggleDirection()
	}
	slog.Info("api: motor control", "running", c.Running, "direction", string(c.Direction))
	jsonResp(w, http.StatusOK, c)
}

// --- helpers ----------------------------------------------------------------

// latest writes 503 and returns false when no tick has been evaluated yet.
func (h *Handler) latest(w http.ResponseWriter) (types.Snapshot, bool) {
	snap, ok := h.sched.Latest()
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, "no snapshot yet")
	}
	return snap, ok
}

// decodeBody decodes a JSON request body into v, writing 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func validatePct(name string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %g", name, v)
	}
	return nil
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// recoveryLogger routes recovered handler panics to slog.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("api: handler panic", "panic", fmt.Sprint(v...))
}
