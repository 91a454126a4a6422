package middleware

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/routertest"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestMetricsMiddleware_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	r := routertest.NewRouter().
		WithRoute("/home").
		WithRoute("/list", "/detail").
		WithOption(router.WithMiddleware(m.Middleware())).
		Build(t)

	r.SetBeforeChange(func(from, to router.Route) bool { return to.Path != "/list" })
	_ = r.Push("/list")
	_ = r.Push("/list/detail")
	_ = r.Replace("/home")
	_ = r.Push("/nowhere")

	tests := []struct {
		kind, outcome string
		want          float64
	}{
		{"push", OutcomeCommitted, 2},
		{"push", OutcomeVetoed, 1},
		{"push", OutcomeError, 1},
		{"replace", OutcomeCommitted, 1},
		{"replace", OutcomeVetoed, 0},
	}
	for _, tt := range tests {
		got := metricCounterValue(t, m.navigationsTotal.WithLabelValues(tt.kind, tt.outcome))
		if got != tt.want {
			t.Errorf("navigations_total{kind=%q,outcome=%q} = %v, want %v", tt.kind, tt.outcome, got, tt.want)
		}
	}

	if got := metricCounterValue(t, m.navigationErrors.WithLabelValues("not_found")); got != 1 {
		t.Errorf("navigation_errors_total{category=not_found} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.navigationDuration.WithLabelValues("push")); got != 4 {
		t.Errorf("navigation_duration_seconds{kind=push} count = %d, want 4", got)
	}
}

func TestMetricsMiddleware_Dropped(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	mw := m.Middleware()

	err := mw.Handle(&router.Navigation{Kind: router.KindPush}, func() error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := metricCounterValue(t, m.navigationsTotal.WithLabelValues("push", OutcomeDropped)); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}

	err = mw.Handle(&router.Navigation{Kind: router.KindPush}, func() error { return errors.New("boom") })
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if got := metricCounterValue(t, m.navigationErrors.WithLabelValues("internal")); got != 1 {
		t.Errorf("navigation_errors_total{category=internal} = %v, want 1", got)
	}
}

func TestMetrics_TrackGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	if got := gaugeValue(t, reg, "test_history_length"); got != 0 {
		t.Errorf("history_length before Track = %v, want 0", got)
	}

	r := routertest.NewRouter().WithRoute("/home").WithRoute("/list", "/detail").Build(t)
	m.Track(r)
	routertest.Mount(r, 1)
	_ = r.Push("/list/detail")

	if got := gaugeValue(t, reg, "test_history_length"); got != 2 {
		t.Errorf("history_length = %v, want 2", got)
	}
	if got := gaugeValue(t, reg, "test_live_components"); got != 1 {
		t.Errorf("live_components = %v, want 1", got)
	}
	if got := gaugeValue(t, reg, "test_pending_components"); got != 1 {
		t.Errorf("pending_components = %v, want 1", got)
	}
}

func TestPrometheus_CustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("app"), WithSubsystem("nav"))
	_ = mw.Handle(&router.Navigation{Kind: router.KindReplace}, func() error { return nil })

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "app_nav_navigations_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected app_nav_navigations_total to be registered")
	}
}
