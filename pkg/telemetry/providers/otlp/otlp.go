// Package otlp provides OpenTelemetry Protocol (OTLP) exporter constructors
// for traces, metrics, and logs over either gRPC or HTTP transport.
package otlp

import "fmt"

// Protocols supported for OTLP export.
const (
	ProtocolGRPC         = "grpc"
	ProtocolHTTPProtobuf = "http/protobuf"
)

// Config describes how to reach the OTLP endpoint.
type Config struct {
	// EndpointURL is the full endpoint URL, including scheme and any path
	// prefix (e.g. "https://otlp-gateway-prod-us.grafana.net/otlp").
	EndpointURL string

	// Protocol selects the transport, one of ProtocolGRPC or
	// ProtocolHTTPProtobuf. Empty defaults to ProtocolHTTPProtobuf.
	Protocol string

	// Headers are additional headers sent with every OTLP request, such as
	// the Authorization header for Grafana Cloud.
	Headers map[string]string
}

func unsupportedProtocol(protocol string) error {
	return fmt.Errorf("unsupported OTLP protocol %q (expected %q or %q)",
		protocol, ProtocolGRPC, ProtocolHTTPProtobuf)
}
