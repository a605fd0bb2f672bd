package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playbook"

// External services observed by the recorder.
const (
	ServiceStats       = "mlb_stats"
	ServiceGenerate    = "generate_text"
	ServiceImage       = "generate_image"
	ServiceChat        = "chat"
	ServiceTranslate   = "translate"
	ServiceObjectStore = "object_store"
	ServiceIdentity    = "identity"
	ServiceSheets      = "sheets"
)

// Outcomes of an external call.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeBlocked = "blocked"
)

// Artifact kinds for cache lookups.
const (
	ArtifactSummary = "summary"
	ArtifactBanner  = "banner"
)

// Recorder owns the Prometheus collectors of the service. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	externalCalls *prometheus.CounterVec
	externalTime  *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	return newRecorder(prometheus.NewRegistry())
}

func newRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: reg,
		externalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_calls_total",
			Help:      "Calls to external services by service and outcome.",
		}, []string{"service", "outcome"}),
		externalTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Latency of external service calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"service"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_cache_lookups_total",
			Help:      "Artifact cache lookups by artifact and result.",
		}, []string{"artifact", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(r.externalCalls, r.externalTime, r.cacheLookups, r.httpRequests, r.httpDuration)
	return r
}

// RecordExternalCall counts one call to an external service.
func (r *Recorder) RecordExternalCall(service, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.externalCalls.WithLabelValues(service, outcome).Inc()
	r.externalTime.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordCacheLookup counts a hit or miss in the artifact cache.
func (r *Recorder) RecordCacheLookup(artifact string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(artifact, result).Inc()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Outcome maps an error to a call outcome label.
func Outcome(err error, blocked func(error) bool) string {
	switch {
	case err == nil:
		return OutcomeOK
	case blocked != nil && blocked(err):
		return OutcomeBlocked
	default:
		return OutcomeError
	}
}
