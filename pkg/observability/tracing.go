package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "person-finder"

// Standard attribute keys
const (
	AttrBackend   = "search.backend"
	AttrQuery     = "search.query"
	AttrErrorKind = "search.error_kind"
	AttrRecords   = "search.records"
	AttrRequestID = "request_id"
)

// GetTracer returns the tracer registered on the global provider.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartUpstreamSpan starts a client span around one upstream call.
// sanitizedQuery must already have passed through the PII sanitizer.
func StartUpstreamSpan(ctx context.Context, backend, sanitizedQuery string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "upstream.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrBackend, backend),
			attribute.String(AttrQuery, sanitizedQuery),
		),
	)
}

// RecordError records an error and its classified kind on a span.
func RecordError(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorKind, kind))
}
