// Package middleware provides observability middleware for routers.
//
// This package includes:
//   - OpenTelemetry tracing of navigations
//   - Prometheus navigation metrics
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts one span per navigation. Spans carry
// the navigation kind, the requested path, the outcome and the resolved
// component chain.
//
//	r, err := router.New(cfg, router.WithMiddleware(
//	    middleware.OpenTelemetry(),
//	))
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithNavigationFilter(func(nav *router.Navigation) bool {
//	        return nav.Kind == router.KindPush
//	    }),
//	)
//
// Pass a parent span with router.WithContext when navigating:
//
//	_ = r.Push("/list", router.WithContext(ctx))
//
// # Prometheus Metrics
//
// The Prometheus middleware counts navigations by kind and outcome and
// observes their duration. NewMetrics additionally exposes gauges for a
// tracked router:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r, err := router.New(cfg, router.WithMiddleware(m.Middleware()))
//	m.Track(r)
//
// Then expose metrics:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
