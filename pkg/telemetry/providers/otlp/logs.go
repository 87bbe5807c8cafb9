package otlp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// NewLogExporter creates an OTLP log exporter using the transport selected
// by config.Protocol.
func NewLogExporter(ctx context.Context, config Config) (sdklog.Exporter, error) {
	switch config.Protocol {
	case ProtocolGRPC:
		opts := []otlploggrpc.Option{
			otlploggrpc.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlploggrpc.WithHeaders(config.Headers))
		}
		exporter, err := otlploggrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC log exporter: %w", err)
		}
		return exporter, nil

	case ProtocolHTTPProtobuf, "":
		opts := []otlploghttp.Option{
			otlploghttp.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlploghttp.WithHeaders(config.Headers))
		}
		exporter, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP log exporter: %w", err)
		}
		return exporter, nil

	default:
		return nil, unsupportedProtocol(config.Protocol)
	}
}
