package observability

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/compute"
)

const namespace = "motortwin"

// Metrics holds every collector exported by the server.
type Metrics struct {
	reg *prometheus.Registry

	healthScore        prometheus.Gauge
	failureProbability prometheus.Gauge
	alertCount         prometheus.Gauge
	loadPercentage     prometheus.Gauge
	rulDays            *prometheus.GaugeVec
	componentStatus    *prometheus.GaugeVec
	machineStatus      *prometheus.GaugeVec
	reading            *prometheus.GaugeVec
	ticks              prometheus.Counter
	violations         *prometheus.CounterVec
	alerts             *prometheus.CounterVec

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New creates Metrics registered on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		healthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "health_score",
			Help:      "Overall motor health score (0-100) of the latest tick.",
		}),
		failureProbability: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failure_probability_percent",
			Help:      "Estimated failure probability in percent.",
		}),
		alertCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_limit_breaches",
			Help:      "Monitored parameters outside their limits on the latest tick.",
		}),
		loadPercentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "load_percent",
			Help:      "Power draw relative to rated power, 0-100.",
		}),
		rulDays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_useful_life_days",
			Help:      "Estimated remaining useful life per component.",
		}, []string{"component"}),
		componentStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_status",
			Help:      "Component status severity (0 normal, 1 warning, 2 critical).",
		}, []string{"component"}),
		machineStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "machine_status",
			Help:      "1 for the current machine operating mode, 0 otherwise.",
		}, []string{"status"}),
		reading: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reading",
			Help:      "Latest raw telemetry value per limit parameter.",
		}, []string{"parameter"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total evaluations performed, including warm-up.",
		}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limit_violations_total",
			Help:      "Ticks on which a monitored parameter was outside its limit.",
		}, []string{"parameter"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_transitions_total",
			Help:      "Alert lifecycle transitions by kind, severity and new state.",
		}, []string{"kind", "severity", "state"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.healthScore,
		m.failureProbability,
		m.alertCount,
		m.loadPercentage,
		m.rulDays,
		m.componentStatus,
		m.machineStatus,
		m.reading,
		m.ticks,
		m.violations,
		m.alerts,
		m.httpRequestsTotal,
		m.httpDuration,
	)
	return m
}

// OnSnapshot implements scheduler.Subscriber.
func (m *Metrics) OnSnapshot(snap types.Snapshot, violations []compute.Violation) {
	m.ticks.Inc()
	m.healthScore.Set(float64(snap.HealthScore))
	m.failureProbability.Set(snap.FailureProbability)
	m.alertCount.Set(float64(snap.AlertCount))
	m.loadPercentage.Set(float64(snap.LoadPercentage))
	m.rulDays.WithLabelValues("motor").Set(float64(snap.RUL.Motor))
	m.rulDays.WithLabelValues("gearbox").Set(float64(snap.RUL.Gearbox))

	for _, c := range snap.Components {
		m.componentStatus.WithLabelValues(c.Name).Set(float64(c.Status.Severity()))
	}
	for _, s := range []types.MachineStatus{types.MachineIdle, types.MachineNormal, types.MachineOverload} {
		v := 0.0
		if s == snap.MachineStatus {
			v = 1
		}
		m.machineStatus.WithLabelValues(string(s)).Set(v)
	}
	for _, p := range types.Parameters {
		if v, ok := snap.Reading.Value(p); ok {
			m.reading.WithLabelValues(string(p)).Set(v)
		}
	}
	for _, v := range violations {
		m.violations.WithLabelValues(string(v.Limit.Parameter)).Inc()
	}
}

// ObserveAlert counts one alert lifecycle transition.
func (m *Metrics) ObserveAlert(kind, severity, state string) {
	m.alerts.WithLabelValues(kind, severity, state).Inc()
}

// RegisterGaugeFunc exports fn as an unlabelled gauge under the service
// namespace, e.g. the number of connected WebSocket clients.
func (m *Metrics) RegisterGaugeFunc(name, help string, fn func() float64) {
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Middleware records request count and duration per route template. It is
// meant for gorilla/mux's Router.Use; requests that matched no route are
// labelled "unmatched". The wrapped ResponseWriter keeps the Hijacker and
// Flusher interfaces so WebSocket upgrades pass through.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		res := httpsnoop.CaptureMetrics(next, w, r)

		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(res.Code)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(res.Duration.Seconds())
	})
}
