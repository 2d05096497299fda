// Package metrics counts what the module loader does: loads started, cache
// hits, parses and failures by kind.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lyn"

// Loader holds the loader counters on a private prometheus registry, so two
// compilations in one process never share series.
type Loader struct {
	Registry *prometheus.Registry

	Loads     prometheus.Counter
	CacheHits prometheus.Counter
	Parses    prometheus.Counter
	Imports   prometheus.Counter
	Failures  *prometheus.CounterVec
}

func NewLoader() *Loader {
	m := &Loader{
		Registry: prometheus.NewRegistry(),
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "loads_total",
			Help:      "Module loads that read and parsed a file.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "cache_hits_total",
			Help:      "Load requests answered from the registry.",
		}),
		Parses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "parses_total",
			Help:      "Files handed to the parser.",
		}),
		Imports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "imports_total",
			Help:      "Import records added to module import tables.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "failures_total",
			Help:      "Failed loads and imports by error kind.",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.Loads, m.CacheHits, m.Parses, m.Imports, m.Failures)
	return m
}

// WriteSummary prints every non-zero series as `name{labels} value`, sorted.
func (m *Loader) WriteSummary(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather loader metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			name := family.GetName()
			for _, label := range metric.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", label.GetName(), label.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
