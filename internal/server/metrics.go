// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

const metricsNamespace = "cv_extractor"

// Upload outcomes used as the status label.
const (
	uploadOK       = "ok"
	uploadRejected = "rejected"
	uploadUnusable = "unusable"
	uploadError    = "error"
)

// Metrics holds the service collectors on a private registry so several
// servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Uploads counts upload requests by outcome.
	// Labels: status (ok, rejected, unusable, error)
	Uploads *prometheus.CounterVec

	// FieldsNotFound counts extracted records per field left at the sentinel.
	// Labels: field (first_name, last_name, email, phone, degree)
	FieldsNotFound *prometheus.CounterVec

	// ProcessDuration observes decode plus extraction time per upload.
	ProcessDuration prometheus.Histogram
}

// NewMetrics registers the service collectors and the Go runtime collectors
// on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Uploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "upload",
				Name:      "requests_total",
				Help:      "Upload requests by outcome",
			},
			[]string{"status"},
		),
		FieldsNotFound: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "extract",
				Name:      "fields_not_found_total",
				Help:      "Extracted records whose field was not recognized",
			},
			[]string{"field"},
		),
		ProcessDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "upload",
				Name:      "process_duration_seconds",
				Help:      "Time spent decoding and extracting one upload in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeRecord(r types.CandidateRecord) {
	for _, field := range r.MissingFields() {
		m.FieldsNotFound.WithLabelValues(field).Inc()
	}
}
