package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Setup installs a global tracer provider that feeds the bridge and,
// for domain.TelemetryStdout, a JSON exporter writing to w.
// The returned function flushes and shuts the provider down.
func Setup(bridge *Bridge, exporter domain.Telemetry, w io.Writer) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(bridge)}

	if exporter == domain.TelemetryStdout {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, zerr.Wrap(err, "failed to create span exporter")
		}
		opts = append(opts, sdktrace.WithSyncer(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
