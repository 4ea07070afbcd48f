package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"arxml-inspect/internal/ports"
	"arxml-inspect/internal/types"
)

const metricsNamespace = "arxml_inspect"

// PrometheusMetricsAdapter records parse statistics on a private
// registry. A CLI run is short-lived, so the registry is written out in
// node_exporter textfile format instead of being served.
type PrometheusMetricsAdapter struct {
	registry *prometheus.Registry
	parses   *prometheus.CounterVec
	duration prometheus.Histogram
	elements *prometheus.GaugeVec
	warnings *prometheus.CounterVec
}

func NewPrometheusMetricsAdapter() *PrometheusMetricsAdapter {
	a := &PrometheusMetricsAdapter{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "parses_total",
			Help:      "Documents parsed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing one document.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		elements: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "document_elements",
			Help:      "Elements in the last parsed document, by kind.",
		}, []string{"kind"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "warnings_total",
			Help:      "Warnings recorded while building documents, by kind.",
		}, []string{"kind"}),
	}
	a.registry.MustRegister(a.parses, a.duration, a.elements, a.warnings)
	return a
}

func (a *PrometheusMetricsAdapter) ObserveParse(doc types.Document, elapsed time.Duration) {
	a.parses.WithLabelValues("success").Inc()
	a.duration.Observe(elapsed.Seconds())
	a.elements.WithLabelValues("packages").Set(float64(doc.Stats.Packages))
	a.elements.WithLabelValues("components").Set(float64(doc.Stats.Components))
	a.elements.WithLabelValues("ports").Set(float64(doc.Stats.Ports))
	a.elements.WithLabelValues("interfaces").Set(float64(doc.Stats.Interfaces))
	a.elements.WithLabelValues("connections").Set(float64(doc.Stats.Connections))
	for _, warning := range doc.Warnings {
		a.warnings.WithLabelValues(string(warning.Kind)).Inc()
	}
}

func (a *PrometheusMetricsAdapter) ObserveFailure(elapsed time.Duration) {
	a.parses.WithLabelValues("failure").Inc()
	a.duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry to path. Nothing is written when
// path is empty.
func (a *PrometheusMetricsAdapter) WriteTextfile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metrics directory").
			WithCause(err)
	}
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write metrics to %s", path)).
			WithCause(err)
	}
	return nil
}

var _ ports.MetricsPort = (*PrometheusMetricsAdapter)(nil)
