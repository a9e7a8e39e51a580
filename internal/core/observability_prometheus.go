package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports query outcomes as a counter vector and a
// latency histogram, both labelled by operation.
type PrometheusMetricsRecorder struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the collectors on reg. A nil reg
// falls back to prometheus.DefaultRegisterer.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rec := &PrometheusMetricsRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "protocolkb",
			Name:      "operations_total",
			Help:      "Protocol knowledge base operations by outcome.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "protocolkb",
			Name:      "operation_duration_seconds",
			Help:      "Latency of protocol knowledge base operations.",
			Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"operation"}),
	}
	if err := reg.Register(rec.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(rec.latency); err != nil {
		reg.Unregister(rec.requests)
		return nil, err
	}
	return rec, nil
}

// Observe records one outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.requests.WithLabelValues(operation, status).Inc()
	r.latency.WithLabelValues(operation).Observe(duration.Seconds())
}
