package otlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exporter construction never dials the endpoint, so these tests run without
// a collector.
func TestNewSpanExporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		protocol string
		wantErr  bool
	}{
		{"grpc", ProtocolGRPC, false},
		{"http/protobuf", ProtocolHTTPProtobuf, false},
		{"default is http", "", false},
		{"unsupported", "http/json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := Config{
				EndpointURL: "http://localhost:4318",
				Protocol:    tt.protocol,
				Headers:     map[string]string{"Authorization": "Basic abc"},
			}

			exporter, err := NewSpanExporter(ctx, config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported OTLP protocol")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, exporter)
		})
	}
}

func TestNewMetricReader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, protocol := range []string{ProtocolGRPC, ProtocolHTTPProtobuf, ""} {
		reader, err := NewMetricReader(ctx, Config{
			EndpointURL: "https://otlp-gateway-prod-us.grafana.net/otlp",
			Protocol:    protocol,
		})
		require.NoError(t, err)
		require.NotNil(t, reader)
	}

	_, err := NewMetricReader(ctx, Config{EndpointURL: "http://localhost:4318", Protocol: "bogus"})
	require.Error(t, err)
}

func TestNewLogExporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, protocol := range []string{ProtocolGRPC, ProtocolHTTPProtobuf, ""} {
		exporter, err := NewLogExporter(ctx, Config{
			EndpointURL: "http://localhost:4318",
			Protocol:    protocol,
		})
		require.NoError(t, err)
		require.NotNil(t, exporter)
	}

	_, err := NewLogExporter(ctx, Config{EndpointURL: "http://localhost:4318", Protocol: "bogus"})
	require.Error(t, err)
}
