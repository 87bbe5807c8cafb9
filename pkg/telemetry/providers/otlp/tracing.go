package otlp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewSpanExporter creates an OTLP span exporter using the transport selected
// by config.Protocol.
func NewSpanExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	switch config.Protocol {
	case ProtocolGRPC:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(config.Headers))
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC trace exporter: %w", err)
		}
		return exporter, nil

	case ProtocolHTTPProtobuf, "":
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpointURL(config.EndpointURL),
		}
		if len(config.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(config.Headers))
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP trace exporter: %w", err)
		}
		return exporter, nil

	default:
		return nil, unsupportedProtocol(config.Protocol)
	}
}
