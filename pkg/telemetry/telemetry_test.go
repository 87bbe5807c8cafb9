package telemetry

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
)

// TestNewProviderScenarios covers the main configuration shapes the resolver
// can produce, validating the created providers without any network I/O:
// exporter construction is lazy, so no collector needs to be running.
func TestNewProviderScenarios(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name               string
		props              autoconf.Properties
		expectError        bool
		errorContains      string
		expectedTracerType string
		expectedMeterType  string
		description        string
	}{
		{
			name: "no endpoint resolved - no-op providers",
			props: autoconf.Properties{
				autoconf.PropResourceAttributes: "service.name=demo",
				autoconf.PropProtocol:           "grpc",
				autoconf.PropTracesExporter:     "otlp",
				autoconf.PropMetricsExporter:    "otlp",
				autoconf.PropLogsExporter:       "otlp",
			},
			expectedTracerType: "noop.TracerProvider",
			expectedMeterType:  "noop.MeterProvider",
			description:        "Missing endpoint disables export instead of failing",
		},
		{
			name: "http/protobuf endpoint - SDK providers",
			props: autoconf.Properties{
				autoconf.PropResourceAttributes: "service.name=demo,service.version=1.0.0",
				autoconf.PropProtocol:           "http/protobuf",
				autoconf.PropEndpoint:           "https://otlp-gateway-prod-us.grafana.net/otlp",
				autoconf.PropHeaders:            "Authorization=Basic MTIzOnNlY3JldA==",
				autoconf.PropTracesExporter:     "otlp",
				autoconf.PropMetricsExporter:    "otlp",
				autoconf.PropLogsExporter:       "otlp",
			},
			expectedTracerType: "trace.TracerProvider",
			expectedMeterType:  "metric.MeterProvider",
			description:        "Cloud-style configuration builds real SDK providers",
		},
		{
			name: "grpc endpoint - SDK providers",
			props: autoconf.Properties{
				autoconf.PropResourceAttributes: "service.name=demo",
				autoconf.PropProtocol:           "grpc",
				autoconf.PropEndpoint:           "http://localhost:4317",
				autoconf.PropTracesExporter:     "otlp",
				autoconf.PropMetricsExporter:    "otlp",
				autoconf.PropLogsExporter:       "otlp",
			},
			expectedTracerType: "trace.TracerProvider",
			expectedMeterType:  "metric.MeterProvider",
			description:        "On-prem gRPC configuration builds real SDK providers",
		},
		{
			name: "logging exporter without endpoint - SDK providers",
			props: autoconf.Properties{
				autoconf.PropResourceAttributes: "service.name=demo",
				autoconf.PropProtocol:           "grpc",
				autoconf.PropTracesExporter:     "logging,otlp",
				autoconf.PropMetricsExporter:    "logging,otlp",
				autoconf.PropLogsExporter:       "logging,otlp",
			},
			expectedTracerType: "trace.TracerProvider",
			expectedMeterType:  "metric.MeterProvider",
			description:        "Debug logging alone still produces working providers",
		},
		{
			name: "unsupported protocol",
			props: autoconf.Properties{
				autoconf.PropProtocol:       "http/json",
				autoconf.PropEndpoint:       "http://localhost:4318",
				autoconf.PropTracesExporter: "otlp",
			},
			expectError:   true,
			errorContains: "unsupported OTLP protocol",
			description:   "A protocol the exporters cannot speak is an error",
		},
		{
			name: "malformed resource attributes",
			props: autoconf.Properties{
				autoconf.PropResourceAttributes: "not-a-pair",
				autoconf.PropTracesExporter:     "otlp",
			},
			expectError:   true,
			errorContains: "invalid otel.resource.attributes",
			description:   "Malformed attributes are rejected before SDK construction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			provider, err := NewProvider(ctx, tt.props)

			if tt.expectError {
				require.Error(t, err, tt.description)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err, tt.description)
			require.NotNil(t, provider)

			tracerType := reflect.TypeOf(provider.TracerProvider()).String()
			assert.True(t, strings.Contains(tracerType, tt.expectedTracerType),
				"tracer provider type %s, want %s", tracerType, tt.expectedTracerType)

			meterType := reflect.TypeOf(provider.MeterProvider()).String()
			assert.True(t, strings.Contains(meterType, tt.expectedMeterType),
				"meter provider type %s, want %s", meterType, tt.expectedMeterType)

			assert.NotNil(t, provider.LoggerProvider())
		})
	}
}

func TestNoopProvider(t *testing.T) {
	t.Parallel()
	provider := NoopProvider()

	require.NotNil(t, provider.TracerProvider())
	require.NotNil(t, provider.MeterProvider())
	require.NotNil(t, provider.LoggerProvider())

	// Shutdown of a no-op provider never fails.
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestHasLoggingExporter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		exporters string
		want      bool
	}{
		{"otlp only", "otlp", false},
		{"logging and otlp", "logging,otlp", true},
		{"logging only", "logging", true},
		{"with spaces", " logging , otlp ", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			props := autoconf.Properties{autoconf.PropTracesExporter: tt.exporters}
			assert.Equal(t, tt.want, hasLoggingExporter(props))
		})
	}
}
