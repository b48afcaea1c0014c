// Package telemetry sets up OpenTelemetry tracing for key dispatch.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	EndpointEnv    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	ServiceNameEnv = "OTEL_SERVICE_NAME"

	DefaultServiceName = "streamydeck"
	// InstrumentationName names the tracer handed to the dispatcher.
	InstrumentationName = "streamydeck/ui"
)

// Provider hands out the tracer used for key presses.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewProvider creates an OTLP/HTTP exporting provider if
// OTEL_EXPORTER_OTLP_ENDPOINT is set, and a no-op provider otherwise.
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv(EndpointEnv)
	if endpoint == "" {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}, nil
	}

	// The variable holds a base URL; its scheme picks TLS or plain HTTP.
	if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s=%q is not a URL like http://localhost:4318", EndpointEnv, endpoint)
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	return newSDKProvider(sdktrace.WithBatcher(exporter)), nil
}

// NewProviderWithProcessor builds an SDK provider around sp. Tests use it
// with a tracetest.SpanRecorder.
func NewProviderWithProcessor(sp sdktrace.SpanProcessor) *Provider {
	return newSDKProvider(sdktrace.WithSpanProcessor(sp))
}

func newSDKProvider(opt sdktrace.TracerProviderOption) *Provider {
	serviceName := os.Getenv(ServiceNameEnv)
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(opt, sdktrace.WithResource(res))
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
	}
}

// Tracer returns the key press tracer.
func (p *Provider) Tracer() oteltrace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
