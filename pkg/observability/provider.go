package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/personfinder/person-finder/pkg/telemetry"
)

// Provider holds initialized OTEL components
type Provider struct {
	Tracer         trace.Tracer
	TracerProvider *sdktrace.TracerProvider
	Sanitizer      *telemetry.Sanitizer

	shutdownFuncs []func(context.Context) error
}

// Init initializes OTEL for a service. With tracing disabled the global
// no-op tracer is used and Shutdown does nothing.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	provider := &Provider{
		Sanitizer: telemetry.NewSanitizer(
			telemetry.PIILevel(cfg.PIILevel),
			cfg.ServiceName,
		),
	}

	if !cfg.TracingEnabled {
		provider.Tracer = otel.Tracer(cfg.ServiceName)
		return provider, nil
	}

	// Create resource with service metadata
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
		resource.WithAttributes(cfg.ResourceAttrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp, err := initTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracer: %w", err)
	}
	provider.TracerProvider = tp
	provider.Tracer = tp.Tracer(cfg.ServiceName)
	provider.shutdownFuncs = append(provider.shutdownFuncs, tp.Shutdown)

	// Set global tracer provider
	otel.SetTracerProvider(tp)

	// Set propagator for trace context
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider, nil
}

// Shutdown gracefully shuts down all providers
func (p *Provider) Shutdown(ctx context.Context) error {
	for _, shutdown := range p.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

func initTracerProvider(ctx context.Context, cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithHeaders(cfg.OTLPHeaders),
		otlptracehttp.WithInsecure(), // TODO: Use TLS once the collector terminates it
	)
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(cfg.SamplingRate),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(cfg.TraceBatchTimeout),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	return tp, nil
}
