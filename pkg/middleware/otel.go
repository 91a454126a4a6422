package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vroute/pkg/router"
)

// Default tracer name for router instrumentation.
const defaultTracerName = "vroute"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vroute").
	TracerName string

	// TracerProvider supplies the tracer. Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// IncludeChain records the resolved component chain on the span.
	// Enabled by default.
	IncludeChain bool

	// Filter determines which navigations to trace.
	// Return true to trace the navigation, false to skip.
	// If nil, all navigations are traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor extracts custom attributes from the navigation.
	// Called once the navigation has finished.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeChain enables/disables recording the component chain.
func WithIncludeChain(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeChain = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:   defaultTracerName,
		IncludeChain: true,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The middleware:
//   - Starts a span per navigation, parented on nav.Context()
//   - Replaces nav.Context() with the span context for later middleware
//   - Records the outcome, the resolved route and the component chain
//   - Records errors and sets span status
//
// Example:
//
//	r, err := router.New(cfg, router.WithMiddleware(
//	    middleware.OpenTelemetry(middleware.WithTracerName("my-app")),
//	))
//
// The tracer comes from the global OpenTelemetry tracer provider unless
// WithTracerProvider is given:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		ctx, span := tracer.Start(
			nav.Context(),
			formatSpanName(nav),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("vroute.kind", string(nav.Kind)),
				attribute.String("vroute.path", nav.Path),
			),
		)
		defer span.End()

		nav.SetContext(context.WithValue(ctx, tracedKey{}, true))

		err := next()

		attrs := []attribute.KeyValue{
			attribute.String("vroute.outcome", Outcome(nav, err)),
			attribute.String("vroute.from", nav.From.Path),
		}
		if config.IncludeChain && len(nav.Chain) > 0 {
			attrs = append(attrs, attribute.StringSlice("vroute.chain", []string(nav.Chain)))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}
		span.SetAttributes(attrs...)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// SpanFromNavigation returns the span started for nav, or nil when the
// navigation was not traced.
func SpanFromNavigation(nav *router.Navigation) trace.Span {
	if nav.Context().Value(tracedKey{}) == nil {
		return nil
	}
	return trace.SpanFromContext(nav.Context())
}

// tracedKey marks contexts created by the OpenTelemetry middleware.
type tracedKey struct{}

func formatSpanName(nav *router.Navigation) string {
	path := nav.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("vroute %s %s", nav.Kind, path)
}
