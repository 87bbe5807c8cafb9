// Package providers contains telemetry provider implementations and builder logic.
package providers

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/grafana/otel-starter-go/pkg/logger"
	"github.com/grafana/otel-starter-go/pkg/telemetry/providers/otlp"
	"github.com/grafana/otel-starter-go/pkg/telemetry/providers/stdout"
)

// Config holds the telemetry configuration for all providers.
type Config struct {
	// OTLP configuration
	EndpointURL string            // EndpointURL is the OTLP endpoint; empty disables OTLP export
	Protocol    string            // Protocol is the OTLP transport, "grpc" or "http/protobuf"
	Headers     map[string]string // Headers are additional headers to send with OTLP requests

	// ResourceAttributes identify the telemetry-emitting process.
	ResourceAttributes map[string]string

	// DebugExporters mirrors all signals to console exporters.
	DebugExporters bool
}

// ProviderOption is an option type used to configure the telemetry providers.
type ProviderOption func(*Config) error

// WithOTLPEndpoint sets the OTLP endpoint URL. An empty endpoint disables
// OTLP export.
func WithOTLPEndpoint(endpointURL string) ProviderOption {
	return func(config *Config) error {
		config.EndpointURL = endpointURL
		return nil
	}
}

// WithProtocol sets the OTLP transport protocol.
func WithProtocol(protocol string) ProviderOption {
	return func(config *Config) error {
		switch protocol {
		case otlp.ProtocolGRPC, otlp.ProtocolHTTPProtobuf, "":
			config.Protocol = protocol
			return nil
		default:
			return fmt.Errorf("unsupported OTLP protocol %q", protocol)
		}
	}
}

// WithHeaders sets the headers sent with OTLP requests.
func WithHeaders(headers map[string]string) ProviderOption {
	return func(config *Config) error {
		config.Headers = headers
		return nil
	}
}

// WithResourceAttributes sets the resource attributes attached to all signals.
func WithResourceAttributes(attrs map[string]string) ProviderOption {
	return func(config *Config) error {
		config.ResourceAttributes = attrs
		return nil
	}
}

// WithDebugExporters sets whether telemetry is mirrored to stdout exporters.
func WithDebugExporters(enabled bool) ProviderOption {
	return func(config *Config) error {
		config.DebugExporters = enabled
		return nil
	}
}

// CompositeProvider combines tracer, meter, and logger providers into a
// single interface and manages their shutdown.
type CompositeProvider struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	loggerProvider log.LoggerProvider
	shutdownFuncs  []func(context.Context) error
}

// NewCompositeProvider creates the appropriate providers based on provided options.
// When neither an OTLP endpoint nor debug exporters are configured, all three
// providers are no-ops.
func NewCompositeProvider(ctx context.Context, options ...ProviderOption) (*CompositeProvider, error) {
	config := Config{}
	for _, option := range options {
		if err := option(&config); err != nil {
			return nil, err
		}
	}

	if config.EndpointURL == "" && !config.DebugExporters {
		logger.Info("No telemetry exporters configured, using no-op providers")
		return createNoOpProvider(), nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attributesFromMap(config.ResourceAttributes)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	composite := &CompositeProvider{}

	if err := composite.createTracerProvider(ctx, config, res); err != nil {
		return nil, err
	}
	if err := composite.createMeterProvider(ctx, config, res); err != nil {
		return nil, err
	}
	if err := composite.createLoggerProvider(ctx, config, res); err != nil {
		return nil, err
	}

	logger.Info("Telemetry providers created successfully")
	return composite, nil
}

func createNoOpProvider() *CompositeProvider {
	return &CompositeProvider{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		loggerProvider: lognoop.NewLoggerProvider(),
	}
}

func (p *CompositeProvider) createTracerProvider(ctx context.Context, config Config, res *resource.Resource) error {
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if config.EndpointURL != "" {
		exporter, err := otlp.NewSpanExporter(ctx, otlpConfig(config))
		if err != nil {
			return fmt.Errorf("failed to create tracer provider (endpoint: %s, protocol: %s): %w",
				config.EndpointURL, config.Protocol, err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	if config.DebugExporters {
		exporter, err := stdout.NewSpanExporter()
		if err != nil {
			return err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	p.tracerProvider = provider
	p.shutdownFuncs = append(p.shutdownFuncs, provider.Shutdown)
	return nil
}

func (p *CompositeProvider) createMeterProvider(ctx context.Context, config Config, res *resource.Resource) error {
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if config.EndpointURL != "" {
		reader, err := otlp.NewMetricReader(ctx, otlpConfig(config))
		if err != nil {
			return fmt.Errorf("failed to create meter provider (endpoint: %s, protocol: %s): %w",
				config.EndpointURL, config.Protocol, err)
		}
		opts = append(opts, sdkmetric.WithReader(reader))
	}
	if config.DebugExporters {
		reader, err := stdout.NewMetricReader()
		if err != nil {
			return err
		}
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	p.meterProvider = provider
	p.shutdownFuncs = append(p.shutdownFuncs, provider.Shutdown)
	return nil
}

func (p *CompositeProvider) createLoggerProvider(ctx context.Context, config Config, res *resource.Resource) error {
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	if config.EndpointURL != "" {
		exporter, err := otlp.NewLogExporter(ctx, otlpConfig(config))
		if err != nil {
			return fmt.Errorf("failed to create logger provider (endpoint: %s, protocol: %s): %w",
				config.EndpointURL, config.Protocol, err)
		}
		opts = append(opts, sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)))
	}
	if config.DebugExporters {
		exporter, err := stdout.NewLogExporter()
		if err != nil {
			return err
		}
		opts = append(opts, sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	}

	provider := sdklog.NewLoggerProvider(opts...)
	p.loggerProvider = provider
	p.shutdownFuncs = append(p.shutdownFuncs, provider.Shutdown)
	return nil
}

func otlpConfig(config Config) otlp.Config {
	return otlp.Config{
		EndpointURL: config.EndpointURL,
		Protocol:    config.Protocol,
		Headers:     config.Headers,
	}
}

func attributesFromMap(attrs map[string]string) []attribute.KeyValue {
	result := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		result = append(result, attribute.String(k, v))
	}
	return result
}

// TracerProvider returns the tracer provider.
func (p *CompositeProvider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// MeterProvider returns the meter provider.
func (p *CompositeProvider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// LoggerProvider returns the logger provider.
func (p *CompositeProvider) LoggerProvider() log.LoggerProvider {
	return p.loggerProvider
}

// Shutdown gracefully shuts down all providers.
func (p *CompositeProvider) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	for i, shutdown := range p.shutdownFuncs {
		if err := shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("provider %d shutdown failed: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown failed with %d errors: %v", len(errs), errs)
	}
	return nil
}
