package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the shared tracer for analysis spans. Until a provider is
// installed it resolves to the global no-op provider, so span calls are
// free in plain batch runs.
var Tracer = otel.Tracer("rqsmap")

// SetupTracing installs an OTLP gRPC trace pipeline when endpoint is
// non-empty and returns a shutdown func. With an empty endpoint the
// global no-op provider stays in place and shutdown is a no-op.
func SetupTracing(ctx context.Context, endpoint, version string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "rqsmap"),
			attribute.String("service.version", version),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
