package observability

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes engine activity as Prometheus collectors.
type Metrics struct {
	Queries  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Width    *prometheus.HistogramVec
	Compiles *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nfa_queries_total",
				Help: "Total number of automaton queries",
			},
			[]string{"automaton", "op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nfa_query_duration_seconds",
				Help:    "Duration of automaton queries",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"automaton", "op"},
		),
		Width: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nfa_active_states",
				Help:    "Peak number of simultaneously active states per simulation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"automaton"},
		),
		Compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nfa_compilations_total",
				Help: "Total number of definitions compiled into automata",
			},
			[]string{"automaton", "status"},
		),
	}

	reg.MustRegister(m.Queries, m.Duration, m.Width, m.Compiles)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			status := "ok"
			switch {
			case e.IsError:
				status = "error"
			case e.Rejected > 0:
				status = "partial"
			}
			m.Compiles.WithLabelValues(e.Automaton, status).Inc()
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			m.Queries.WithLabelValues(e.Automaton, e.Operation, resultLabel(e.Result)).Inc()
			m.Duration.WithLabelValues(e.Automaton, e.Operation).Observe(e.Duration.Seconds())
			if e.Width > 0 {
				m.Width.WithLabelValues(e.Automaton).Observe(float64(e.Width))
			}
		},
	}
}

func resultLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
