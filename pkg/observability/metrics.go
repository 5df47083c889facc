package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	registry *prometheus.Registry

	Resolved         prometheus.Counter
	HitsPerSequence  prometheus.Histogram
	DomainsPerSeq    prometheus.Histogram
	ResolveDuration  prometheus.Histogram
	Labels           *prometheus.CounterVec
	Unclassified     prometheus.Counter
	ClassifyDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Resolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthaser_sequences_resolved_total",
			Help: "Total number of sequences whose hits were resolved into domains",
		}),
		HitsPerSequence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "synthaser_hits_per_sequence",
			Help:    "Raw hit records received per sequence",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		DomainsPerSeq: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "synthaser_domains_per_sequence",
			Help:    "Resolved domains per sequence",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "synthaser_resolve_duration_seconds",
			Help:    "Duration of interval resolution per sequence",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Labels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthaser_label_assignments_total",
				Help: "Total number of sequences assigned each classification label",
			},
			[]string{"label"},
		),
		Unclassified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthaser_sequences_unclassified_total",
			Help: "Total number of sequences no forest root matched",
		}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "synthaser_classify_duration_seconds",
			Help:    "Duration of forest evaluation per sequence",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	m.registry.MustRegister(
		m.Resolved, m.HitsPerSequence, m.DomainsPerSeq, m.ResolveDuration,
		m.Labels, m.Unclassified, m.ClassifyDuration,
	)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolved: func(_ context.Context, e *domain.ResolveEvent) {
			m.Resolved.Inc()
			m.HitsPerSequence.Observe(float64(e.Hits))
			m.DomainsPerSeq.Observe(float64(e.Domains))
			m.ResolveDuration.Observe(e.Duration.Seconds())
		},
		OnClassified: func(_ context.Context, e *domain.ClassifyEvent) {
			m.ClassifyDuration.Observe(e.Duration.Seconds())
			if len(e.Paths) == 0 {
				m.Unclassified.Inc()
				return
			}
			seen := make(map[string]bool)
			for _, path := range e.Paths {
				for _, label := range path {
					if !seen[label] {
						seen[label] = true
						m.Labels.WithLabelValues(label).Inc()
					}
				}
			}
		},
	}
}

// LogHooks returns lifecycle hooks that log each event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolved: func(ctx context.Context, e *domain.ResolveEvent) {
			logger.DebugContext(ctx, "sequence resolved",
				"sequence_id", e.SequenceID,
				"hits", e.Hits,
				"domains", e.Domains,
				"duration", e.Duration,
			)
		},
		OnClassified: func(ctx context.Context, e *domain.ClassifyEvent) {
			labels := make([]string, len(e.Paths))
			for i, p := range e.Paths {
				labels[i] = p.String()
			}
			logger.DebugContext(ctx, "sequence classified",
				"sequence_id", e.SequenceID,
				"paths", labels,
				"duration", e.Duration,
			)
		},
	}
}

// Combine fans every event out to all non-nil callbacks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	var resolved []func(context.Context, *domain.ResolveEvent)
	var classified []func(context.Context, *domain.ClassifyEvent)
	for _, h := range hooks {
		if h.OnResolved != nil {
			resolved = append(resolved, h.OnResolved)
		}
		if h.OnClassified != nil {
			classified = append(classified, h.OnClassified)
		}
	}
	if len(resolved) > 0 {
		out.OnResolved = func(ctx context.Context, e *domain.ResolveEvent) {
			for _, fn := range resolved {
				fn(ctx, e)
			}
		}
	}
	if len(classified) > 0 {
		out.OnClassified = func(ctx context.Context, e *domain.ClassifyEvent) {
			for _, fn := range classified {
				fn(ctx, e)
			}
		}
	}
	return out
}
