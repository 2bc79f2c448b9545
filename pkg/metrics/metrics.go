// Package metrics exports the counters of a finished run as a Prometheus
// textfile, suitable for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/toestah/dawson-extractor/pkg/extractor"
)

// Metrics holds the gauges describing one extraction run
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	APICalls prometheus.Gauge
	Errors   prometheus.Gauge

	// Document metrics
	Downloaded      prometheus.Gauge
	Skipped         prometheus.Gauge
	LibraryTotal    prometheus.Gauge
	Target          prometheus.Gauge
	DocumentsByType *prometheus.GaugeVec

	// Run metrics
	DurationSeconds prometheus.Gauge
	LastRunTime     prometheus.Gauge
	RunInfo         *prometheus.GaugeVec
}

// New creates the gauges on a private registry. Every series carries the
// run_id as a constant label.
func New(runID string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"run_id": runID}

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "dawson_extractor",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &Metrics{registry: reg}

	m.APICalls = gauge("api_calls", "API calls issued during the run")
	m.Errors = gauge("errors", "Failed API calls and writes during the run")
	m.Downloaded = gauge("documents_downloaded", "New documents saved during the run")
	m.Skipped = gauge("documents_skipped", "Candidates skipped because they were already saved")
	m.LibraryTotal = gauge("library_documents", "Documents in the output tree after the run")
	m.Target = gauge("target_documents", "Configured target document count")
	m.DurationSeconds = gauge("run_duration_seconds", "Wall-clock duration of the run")
	m.LastRunTime = gauge("last_run_timestamp_seconds", "Unix time the run finished")

	m.DocumentsByType = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "dawson_extractor",
		Name:        "documents_by_type",
		Help:        "New documents saved per configured type when minimums are enabled",
		ConstLabels: labels,
	}, []string{"type"})

	m.RunInfo = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "dawson_extractor",
		Name:        "run_info",
		Help:        "Always 1; labelled with how the run ended",
		ConstLabels: labels,
	}, []string{"outcome"})

	return m
}

// Observe copies a run summary into the gauges
func (m *Metrics) Observe(s *extractor.Summary) {
	m.APICalls.Set(float64(s.APICalls))
	m.Errors.Set(float64(s.Errors))
	m.Downloaded.Set(float64(s.Downloaded))
	m.Skipped.Set(float64(s.Skipped))
	m.LibraryTotal.Set(float64(s.TotalInLibrary))
	m.Target.Set(float64(s.Target))
	m.DurationSeconds.Set(s.Duration.Seconds())
	m.LastRunTime.SetToCurrentTime()

	for _, tc := range s.TypeCounts {
		m.DocumentsByType.WithLabelValues(tc.Type).Set(float64(tc.Count))
	}
	m.RunInfo.WithLabelValues(string(s.Outcome)).Set(1)
}

// Registry exposes the gatherer, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all gauges to path in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
