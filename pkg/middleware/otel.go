package middleware

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/webcomp-dev/webcomp/pkg/router"
)

// Default tracer name for webcomp applications.
const defaultTracerName = "webcomp"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "webcomp").
	TracerName string

	// Tracer overrides the tracer of the global provider.
	Tracer trace.Tracer

	// IncludeQuery adds the query keys to the span.
	IncludeQuery bool

	// Filter determines which matches to trace.
	// If nil, all matches are traced.
	Filter func(m router.Match) bool

	// AttributeExtractor extracts custom attributes from the match.
	AttributeExtractor func(m router.Match) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = tracer
	}
}

// WithIncludeQuery enables including the query keys in spans.
func WithIncludeQuery(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeQuery = include
	}
}

// WithMatchFilter sets a filter function for matches.
func WithMatchFilter(filter func(m router.Match) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(m router.Match) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every handler call.
//
// The middleware:
//   - Creates a span per call with the pattern, path and parameters
//   - Sets the span status, recording a panic as an error before
//     re-panicking
//
// The tracer defaults to the global OpenTelemetry tracer provider.
// Configure it before registering routes:
//
//	otel.SetTracerProvider(tp)
//	r.On("/users/:id", middleware.Chain("/users/:id", h, middleware.OpenTelemetry()), false)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}

	return func(pattern string, next router.Handler) router.Handler {
		return func(m router.Match) {
			if config.Filter != nil && !config.Filter(m) {
				next(m)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("webcomp.route", pattern),
				attribute.String("webcomp.path", m.Path),
				attribute.Int("webcomp.params", len(m.Params)),
			}
			for name, value := range m.Params {
				attrs = append(attrs, attribute.String("webcomp.param."+name, value))
			}
			if config.IncludeQuery && len(m.Query) > 0 {
				keys := make([]string, 0, len(m.Query))
				for k := range m.Query {
					keys = append(keys, k)
				}
				attrs = append(attrs, attribute.StringSlice("webcomp.query", keys))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(m)...)
			}

			ctx, span := tracer.Start(m.Context(), "webcomp.route "+pattern,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...))
			defer span.End()

			defer func() {
				if v := recover(); v != nil {
					err := fmt.Errorf("handler panicked: %v", v)
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					panic(v)
				}
			}()

			next(m.WithContext(ctx))
			span.SetStatus(codes.Ok, "")
		}
	}
}
