package otlp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// NewMetricReader creates a periodic reader backed by an OTLP metric
// exporter using the transport selected by config.Protocol.
func NewMetricReader(ctx context.Context, config Config) (sdkmetric.Reader, error) {
	exporter, err := newMetricExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exporter), nil
}

func newMetricExporter(ctx context.Context, config Config) (sdkmetric.Exporter, error) {
	switch config.Protocol {
	case ProtocolGRPC:
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlpmetricgrpc.WithHeaders(config.Headers))
		}
		return otlpmetricgrpc.New(ctx, opts...)

	case ProtocolHTTPProtobuf, "":
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlpmetrichttp.WithHeaders(config.Headers))
		}
		return otlpmetrichttp.New(ctx, opts...)

	default:
		return nil, unsupportedProtocol(config.Protocol)
	}
}
