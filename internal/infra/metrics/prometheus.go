// Package metrics records request lifecycle and HTTP metrics in Prometheus.
package metrics

import (
	"net/http"
	"time"

	"testdrive-hub/internal/domain/testdrive"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "testdrive"

// PrometheusRecorder implements shared.Metrics and the HTTP middleware recorder.
type PrometheusRecorder struct {
	gatherer prometheus.Gatherer

	submissionsTotal *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	draftSavesTotal  *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewPrometheusRecorder registers its collectors on reg. A nil reg uses a fresh registry.
func NewPrometheusRecorder(reg *prometheus.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		gatherer: reg,
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Test drive request submissions by result",
			},
			[]string{"result"},
		),
		transitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Status transitions by action and result",
			},
			[]string{"action", "result"},
		),
		draftSavesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "draft_saves_total",
				Help:      "Draft autosave writes by result",
			},
			[]string{"result"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (p *PrometheusRecorder) ObserveSubmission(result string) {
	p.submissionsTotal.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) ObserveTransition(action testdrive.Action, result string) {
	p.transitionsTotal.WithLabelValues(action.String(), result).Inc()
}

func (p *PrometheusRecorder) ObserveDraftSave(result string) {
	p.draftSavesTotal.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) ObserveHTTP(method, route, status string, d time.Duration) {
	p.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// Handler exposes the registry in the text exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
