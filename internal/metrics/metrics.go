// Package metrics records declaration statistics in Prometheus format.
//
// The CLI runs once per invocation, so nothing is served over HTTP; the
// registry is written in node-exporter textfile-collector format instead.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/eksstack/internal/graph"
)

// Registry holds the metrics of one synthesis run. It implements
// synth.MetricsRecorder.
type Registry struct {
	reg *prometheus.Registry

	resources     *prometheus.GaugeVec
	accessRules   prometheus.Gauge
	outputs       prometheus.Gauge
	findings      *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// New creates a registry with every metric registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		resources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "eksstack",
				Subsystem: "graph",
				Name:      "resources",
				Help:      "Number of declared resources by kind",
			},
			[]string{"stack", "kind"},
		),
		accessRules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eksstack",
			Subsystem: "graph",
			Name:      "access_rules",
			Help:      "Number of declared access rules",
		}),
		outputs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eksstack",
			Subsystem: "graph",
			Name:      "outputs",
			Help:      "Number of registered outputs",
		}),
		findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eksstack",
				Subsystem: "validation",
				Name:      "findings_total",
				Help:      "Total number of validation findings by severity",
			},
			[]string{"severity"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eksstack",
				Subsystem: "synth",
				Name:      "duration_seconds",
				Help:      "Duration of synthesis phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
			},
			[]string{"phase"},
		),
	}
	r.reg.MustRegister(r.resources, r.accessRules, r.outputs, r.findings, r.phaseDuration)
	return r
}

// ObserveFinding counts one validation finding.
func (r *Registry) ObserveFinding(severity string) {
	r.findings.WithLabelValues(severity).Inc()
}

// ObservePhase records how long a synthesis phase took.
func (r *Registry) ObservePhase(phase string, seconds float64) {
	r.phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// ObserveGraph records the size of an assembled graph. Kinds without nodes
// are reported as zero.
func (r *Registry) ObserveGraph(g *graph.Graph) {
	r.resources.Reset()
	for _, k := range graph.Kinds() {
		r.resources.WithLabelValues(g.Name(), string(k)).Set(float64(len(g.NodesOfKind(k))))
	}
	r.accessRules.Set(float64(len(g.AccessRules())))
	r.outputs.Set(float64(len(g.Outputs())))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes every metric to path for the textfile collector.
// The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
