// Package metrics writes the outcome of a run in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Porizovatel/kulda/pkg/health"
)

const namespace = "influx_check"

// Gatherer builds a registry holding the gauges for report.
func Gatherer(report *health.Report) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	status := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status",
		Help:      "Outcome of each check (1 healthy, 0 otherwise).",
	}, []string{"check", "name"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Time spent in each check.",
	}, []string{"check", "name"})
	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "success",
		Help:      "Whether the run completed (1) or failed early (0).",
	})

	for _, c := range []prometheus.Collector{status, duration, success} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	for _, response := range report.Responses {
		value := 0.0
		if response.IsHealthy() {
			value = 1
		}
		status.WithLabelValues(response.Type, response.Name).Set(value)
		duration.WithLabelValues(response.Type, response.Name).Set(response.Duration.Seconds())
	}
	if report.Success {
		success.Set(1)
	}

	return registry, nil
}

// WriteFile atomically replaces path with the metrics for report.
func WriteFile(path string, report *health.Report) error {
	registry, err := Gatherer(report)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
