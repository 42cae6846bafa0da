// Package metrics provides a Prometheus implementation of ports.BuildRecorder.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/builder-service/internal/ports"
)

const namespace = "builder"

// Recorder counts builds and rule violations.
//
// Exposed series:
//   - builder_builds_total{entity,outcome}
//   - builder_rule_violations_total{entity,field}
type Recorder struct {
	builds     *prometheus.CounterVec
	violations *prometheus.CounterVec
}

var _ ports.BuildRecorder = (*Recorder)(nil)

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Builds attempted, by entity and outcome.",
		}, []string{"entity", "outcome"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_violations_total",
			Help:      "Validation rule violations, by entity and field.",
		}, []string{"entity", "field"}),
	}

	for _, c := range []prometheus.Collector{r.builds, r.violations} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering build metrics: %w", err)
		}
	}

	return r, nil
}

// RecordBuild implements ports.BuildRecorder.
func (r *Recorder) RecordBuild(_ context.Context, entity string, violations []string) {
	r.builds.WithLabelValues(entity, ports.Outcome(violations)).Inc()

	for _, field := range violations {
		r.violations.WithLabelValues(entity, field).Inc()
	}
}
