package middleware

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rterrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// Navigation outcomes used as the "outcome" label.
const (
	OutcomeCommitted = "committed"
	OutcomeVetoed    = "vetoed"
	OutcomeDropped   = "dropped"
	OutcomeError     = "error"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vroute",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation collectors registered on one registry.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec

	tracked atomic.Pointer[router.Router]
}

// NewMetrics registers the navigation collectors.
//
// Metrics collected:
//   - vroute_navigations_total: Counter of navigations by kind and outcome
//   - vroute_navigation_duration_seconds: Histogram of navigation duration by kind
//   - vroute_navigation_errors_total: Counter of failed navigations by error category
//   - vroute_history_length: Gauge of the tracked router's history length
//   - vroute_pending_components: Gauge of names waiting for a component
//   - vroute_live_components: Gauge of registered components
//
// Registering twice on the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	m := &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by kind and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "outcome"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, hooks included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of failed navigations by error category",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),
	}

	gauge := func(name, help string, read func(r *router.Router) int) {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, func() float64 {
			r := m.tracked.Load()
			if r == nil {
				return 0
			}
			return float64(read(r))
		})
	}
	gauge("history_length", "Number of routes in the tracked router's history",
		func(r *router.Router) int { return len(r.History()) })
	gauge("pending_components", "Number of component names waiting for a component to register",
		func(r *router.Router) int { return len(r.Pending()) })
	gauge("live_components", "Number of registered components",
		func(r *router.Router) int { return len(r.Components()) })

	return m
}

// Track points the state gauges at r. Only the last tracked router is reported.
func (m *Metrics) Track(r *router.Router) {
	m.tracked.Store(r)
}

// Middleware returns navigation middleware that feeds m.
func (m *Metrics) Middleware() router.Middleware {
	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		kind := string(nav.Kind)
		start := time.Now()

		err := next()

		m.navigationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		outcome := Outcome(nav, err)
		if err != nil {
			m.navigationErrors.WithLabelValues(categorizeError(err)).Inc()
		}
		m.navigationsTotal.WithLabelValues(kind, outcome).Inc()

		return err
	})
}

// Prometheus creates middleware that collects Prometheus metrics for
// navigations. It is shorthand for NewMetrics(opts...).Middleware().
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	r, err := router.New(cfg, router.WithMiddleware(
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) router.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Outcome classifies a finished navigation.
func Outcome(nav *router.Navigation, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case nav.Committed():
		return OutcomeCommitted
	case nav.Vetoed():
		return OutcomeVetoed
	default:
		return OutcomeDropped
	}
}

// categorizeError returns the router error category, which keeps label
// cardinality bounded.
func categorizeError(err error) string {
	var re *rterrors.RouterError
	if errors.As(err, &re) && re.Category != "" {
		return string(re.Category)
	}
	return "internal"
}
