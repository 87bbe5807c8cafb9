// Package telemetry builds OpenTelemetry SDK providers from resolved
// autoconfiguration properties and registers them as the process globals.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
	"github.com/grafana/otel-starter-go/pkg/telemetry/providers"
)

// Provider encapsulates the OpenTelemetry providers built from resolved
// configuration properties.
type Provider struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	loggerProvider log.LoggerProvider
	shutdown       func(context.Context) error
}

// NewProvider builds tracer, meter, and logger providers from the resolved
// property map and sets them as the otel globals. When no endpoint was
// resolved and debug logging is off, the providers are no-ops; a non-nil
// error is only returned when the properties are malformed or exporter
// construction fails, and callers are expected to fall back to
// [NoopProvider] rather than abort startup.
func NewProvider(ctx context.Context, props autoconf.Properties) (*Provider, error) {
	attrs, err := ParseAttributes(props[autoconf.PropResourceAttributes])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", autoconf.PropResourceAttributes, err)
	}

	headers, err := ParseAttributes(props[autoconf.PropHeaders])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", autoconf.PropHeaders, err)
	}

	composite, err := providers.NewCompositeProvider(ctx,
		providers.WithOTLPEndpoint(props[autoconf.PropEndpoint]),
		providers.WithProtocol(props[autoconf.PropProtocol]),
		providers.WithHeaders(headers),
		providers.WithResourceAttributes(attrs),
		providers.WithDebugExporters(hasLoggingExporter(props)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry providers: %w", err)
	}

	return setGlobalProvidersAndReturn(composite), nil
}

// setGlobalProvidersAndReturn sets the global providers for OTEL and returns
// the wrapped provider.
func setGlobalProvidersAndReturn(composite *providers.CompositeProvider) *Provider {
	otel.SetTracerProvider(composite.TracerProvider())
	otel.SetMeterProvider(composite.MeterProvider())
	global.SetLoggerProvider(composite.LoggerProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{
		tracerProvider: composite.TracerProvider(),
		meterProvider:  composite.MeterProvider(),
		loggerProvider: composite.LoggerProvider(),
		shutdown:       composite.Shutdown,
	}
}

// NoopProvider returns a Provider whose tracer, meter, and logger providers
// discard everything. Callers use it when NewProvider fails so the host
// application keeps running without telemetry instead of crashing.
func NoopProvider() *Provider {
	return &Provider{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		loggerProvider: lognoop.NewLoggerProvider(),
	}
}

// hasLoggingExporter reports whether the resolved exporter list includes the
// console "logging" exporter. The three signal lists are always resolved to
// the same value, so checking the traces list is sufficient.
func hasLoggingExporter(props autoconf.Properties) bool {
	for _, part := range strings.Split(props[autoconf.PropTracesExporter], ",") {
		if strings.TrimSpace(part) == "logging" {
			return true
		}
	}
	return false
}

// TracerProvider returns the configured tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// MeterProvider returns the configured meter provider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// LoggerProvider returns the configured logger provider.
func (p *Provider) LoggerProvider() log.LoggerProvider {
	return p.loggerProvider
}

// Shutdown gracefully shuts down the telemetry provider, flushing any
// buffered telemetry.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown != nil {
		return p.shutdown(ctx)
	}
	return nil
}
