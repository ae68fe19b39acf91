package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the counters of a single run in a private registry.
// All methods can be called on a nil *Metrics.
type Metrics struct {
	registry  *prometheus.Registry
	elements  *prometheus.CounterVec
	tags      *prometheus.CounterVec
	wayNodes  prometheus.Counter
	rows      *prometheus.GaugeVec
	duration  prometheus.Gauge
	validated prometheus.Gauge
	runID     string
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "osmcsv"
	}
	runID := uuid.New().String()
	m := &Metrics{
		runID:    runID,
		registry: prometheus.NewRegistry(),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_total",
			Help:      "Number of shaped OSM elements.",
		}, []string{"type"}),
		tags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tags_total",
			Help:      "Number of tags, dropped tags have problem characters in their key.",
		}, []string{"state"}),
		wayNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "way_nodes_total",
			Help:      "Number of way node references.",
		}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Number of rows written to each table.",
		}, []string{"table"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		validated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validation_enabled",
			Help:      "1 if records were validated against the schema.",
		}),
	}
	info := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "run_info",
		Help:        "Always 1, labeled with the ID of the run.",
		ConstLabels: prometheus.Labels{"run_id": runID},
	})
	info.Set(1)
	m.registry.MustRegister(m.elements, m.tags, m.wayNodes, m.rows, m.duration, m.validated, info)
	return m
}

// RunID returns the random ID of this run.
func (m *Metrics) RunID() string {
	if m == nil {
		return ""
	}
	return m.runID
}

func (m *Metrics) addElements(kind string, n int) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) addTags(written, dropped int) {
	if m == nil {
		return
	}
	m.tags.WithLabelValues("written").Add(float64(written))
	m.tags.WithLabelValues("dropped").Add(float64(dropped))
}

func (m *Metrics) addWayNodes(n int) {
	if m == nil {
		return
	}
	m.wayNodes.Add(float64(n))
}

func (m *Metrics) SetRows(table string, n int64) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(table).Set(float64(n))
}

func (m *Metrics) SetDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Set(d.Seconds())
}

func (m *Metrics) SetValidated(validated bool) {
	if m == nil {
		return
	}
	if validated {
		m.validated.Set(1)
	} else {
		m.validated.Set(0)
	}
}

// WriteTextfile writes all metrics in the text exposition format, e.g. for
// the textfile collector of the node exporter.
func (m *Metrics) WriteTextfile(filename string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(filename, m.registry)
}
