package observability

import (
	"context"
	"fmt"
	"os"

	"careerscope/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Manager manages OpenTelemetry tracing setup. When tracing is disabled it
// is inert: Tracer returns a no-op tracer and Shutdown does nothing.
type Manager struct {
	cfg            config.ObservabilityConfig
	serviceVersion string
	tracerProvider *trace.TracerProvider
	shutdownFuncs  []func(context.Context) error
}

// NewManager creates a tracing manager from the observability configuration
func NewManager(cfg config.ObservabilityConfig, serviceVersion string) (*Manager, error) {
	m := &Manager{cfg: cfg, serviceVersion: serviceVersion}

	if !cfg.Enabled {
		return m, nil
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return m, nil
}

// initTracing sets up the tracer provider and registers it globally
func (m *Manager) initTracing() error {
	exporter, err := m.createExporter()
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.cfg.ServiceName),
			semconv.ServiceVersion(m.serviceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// createExporter picks the span exporter based on configuration. Console
// output wins over OTLP so local debugging never needs a collector.
func (m *Manager) createExporter() (trace.SpanExporter, error) {
	if m.cfg.ConsoleOutput {
		return stdouttrace.New(stdouttrace.WithWriter(stderrWriter{}))
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(m.cfg.OTLP.Endpoint),
	}
	if m.cfg.OTLP.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(m.cfg.OTLP.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(m.cfg.OTLP.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// stderrWriter keeps console span output off stdout, which the terminal
// UI owns
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

// Tracer returns a tracer for the given instrumentation name
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.cfg.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown flushes pending spans and releases exporter resources
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
