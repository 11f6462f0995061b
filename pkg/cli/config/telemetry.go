package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Telemetry holds OpenTelemetry trace export configuration
type Telemetry struct {
	Endpoint string
	Insecure bool
}

// Flags returns CLI flags for Telemetry configuration
func (t *Telemetry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "otel-endpoint",
			Usage:       "OTLP gRPC endpoint for traces (disabled if empty)",
			Category:    "Telemetry",
			Sources:     cli.EnvVars("GOVPULSE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"),
			Destination: &t.Endpoint,
		},
		&cli.BoolFlag{
			Name:        "otel-insecure",
			Usage:       "Disable TLS for the OTLP exporter",
			Category:    "Telemetry",
			Sources:     cli.EnvVars("GOVPULSE_OTEL_INSECURE", "OTEL_EXPORTER_OTLP_INSECURE"),
			Destination: &t.Insecure,
		},
	}
}

// Configure installs the global tracer provider and returns its shutdown
// function. Without an endpoint it is a no-op.
func (t *Telemetry) Configure(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	if t.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(t.Endpoint)}
	if t.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OTLP exporter", goerr.V("endpoint", t.Endpoint))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create telemetry resource")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

// LogValue returns structured log value
func (t Telemetry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", t.Endpoint),
		slog.Bool("insecure", t.Insecure),
	)
}
