// Package telemetry wires optional OpenTelemetry tracing for toolchain
// invocations. Tracing stays off unless VIRA_OTEL_ENDPOINT names an
// OTLP/HTTP collector.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// EndpointEnv selects the OTLP/HTTP collector endpoint. Empty disables
// tracing entirely.
const EndpointEnv = "VIRA_OTEL_ENDPOINT"

const tracerName = "vira/cli"

// Setup installs a global tracer provider when tracing is enabled and
// returns a shutdown func that flushes pending spans. With tracing
// disabled, the shutdown func is a no-op and Setup never fails.
func Setup(ctx context.Context, version string) (func(context.Context) error, error) {
	endpoint := os.Getenv(EndpointEnv)
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
	}

	res := sdkresource.NewSchemaless(
		attribute.String("service.name", "vira"),
		attribute.String("service.version", version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns the CLI tracer from the global provider. When Setup never
// installed a provider this is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
