// Package autoconf derives OpenTelemetry autoconfiguration properties from
// Grafana Cloud credentials, on-prem OTLP settings, and process metadata.
//
// Resolution is a pure function of its inputs: malformed or missing values
// degrade to warnings and omitted optional properties, never errors. When
// cloud credentials and on-prem settings are both supplied, the cloud
// settings win and the conflicting on-prem values are reported as ignored.
package autoconf

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Property keys understood by the telemetry provider builder. They mirror
// the standard OpenTelemetry autoconfiguration property names.
const (
	PropResourceAttributes = "otel.resource.attributes"
	PropProtocol           = "otel.exporter.otlp.protocol"
	PropHeaders            = "otel.exporter.otlp.headers"
	PropEndpoint           = "otel.exporter.otlp.endpoint"
	PropTracesExporter     = "otel.traces.exporter"
	PropMetricsExporter    = "otel.metrics.exporter"
	PropLogsExporter       = "otel.logs.exporter"
)

// OTLP transport protocols.
const (
	ProtocolGRPC         = "grpc"
	ProtocolHTTPProtobuf = "http/protobuf"
)

// cloudGatewayFormat is the Grafana Cloud OTLP gateway URL, parameterized by zone.
const cloudGatewayFormat = "https://otlp-gateway-%s.grafana.net/otlp"

// CloudSettings identifies a Grafana Cloud stack. Credentials are considered
// present only when both InstanceID and APIKey are set.
type CloudSettings struct {
	InstanceID int
	APIKey     string
	Zone       string
}

// OnPremSettings describes a self-managed OTLP collector. Both fields are
// optional and are ignored when cloud credentials are present.
type OnPremSettings struct {
	Endpoint string
	Protocol string
}

// Settings is the full input surface of a resolution call.
type Settings struct {
	Cloud  CloudSettings
	OnPrem OnPremSettings

	// DebugLogging mirrors all telemetry to console exporters in addition
	// to OTLP.
	DebugLogging bool

	// GlobalAttributes are caller-supplied resource attributes. They are
	// never overwritten by derived values.
	GlobalAttributes map[string]string

	// ApplicationName is the configured service name, if any.
	ApplicationName string

	// ManifestName and ManifestVersion come from the build metadata of the
	// main module and serve as fallbacks for service.name and
	// service.version.
	ManifestName    string
	ManifestVersion string

	// Hostname and Host carry the HOSTNAME and HOST environment variables
	// and serve as fallbacks for service.instance.id, in that order.
	Hostname string
	Host     string
}

// Properties is a resolved OpenTelemetry configuration, keyed by the Prop*
// constants above.
type Properties map[string]string

// Resolve turns Settings into the property map consumed by the telemetry
// provider builder, along with warnings for any inconsistent or incomplete
// input combinations. It has no failure path and is idempotent: identical
// settings always yield identical properties.
func Resolve(s Settings) (Properties, []string) {
	var warnings []string

	exporters := "otlp"
	if s.DebugLogging {
		exporters = "logging,otlp"
	}

	authHeader, authPresent, ws := ResolveBasicAuthHeader(s.Cloud.InstanceID, s.Cloud.APIKey)
	warnings = append(warnings, ws...)

	protocol, ws := ResolveProtocol(s.OnPrem.Protocol, authPresent)
	warnings = append(warnings, ws...)

	props := Properties{
		PropResourceAttributes: ResolveResourceAttributes(s.GlobalAttributes,
			s.ApplicationName, s.ManifestName, s.ManifestVersion, s.Hostname, s.Host),
		PropProtocol:        protocol,
		PropTracesExporter:  exporters,
		PropMetricsExporter: exporters,
		PropLogsExporter:    exporters,
	}

	if authPresent {
		props[PropHeaders] = authHeader
	}

	endpoint, ok, ws := ResolveEndpoint(s.OnPrem.Endpoint, s.Cloud.Zone, authPresent)
	warnings = append(warnings, ws...)
	if ok {
		props[PropEndpoint] = endpoint
	}

	return props, warnings
}

// ResolveProtocol picks the OTLP transport protocol. Cloud credentials force
// http/protobuf because the Grafana Cloud gateway only accepts that
// transport; otherwise the on-prem protocol applies, defaulting to grpc.
func ResolveProtocol(onPremProtocol string, authPresent bool) (string, []string) {
	hasProtocol := notBlank(onPremProtocol)
	if authPresent {
		var warnings []string
		if hasProtocol {
			warnings = append(warnings,
				"ignoring grafana.otlp.onprem.protocol, because grafana.otlp.cloud.instanceId was found")
		}
		return ProtocolHTTPProtobuf, warnings
	}

	if hasProtocol {
		return onPremProtocol, nil
	}
	return ProtocolGRPC, nil
}

// ResolveEndpoint picks the OTLP endpoint URL. With cloud credentials the
// endpoint is derived from the cloud zone; without them the on-prem endpoint
// is used verbatim. The bool result reports whether an endpoint was resolved.
func ResolveEndpoint(onPremEndpoint, cloudZone string, authPresent bool) (string, bool, []string) {
	var warnings []string
	hasZone := notBlank(cloudZone)
	hasEndpoint := notBlank(onPremEndpoint)

	if authPresent {
		if hasEndpoint {
			warnings = append(warnings,
				"ignoring grafana.otlp.onprem.endpoint, because grafana.otlp.cloud.instanceId was found")
		}
		if hasZone {
			return fmt.Sprintf(cloudGatewayFormat, cloudZone), true, warnings
		}
		warnings = append(warnings, "please specify grafana.otlp.cloud.zone")
		return "", false, warnings
	}

	if hasZone {
		warnings = append(warnings,
			"ignoring grafana.otlp.cloud.zone, because grafana.otlp.onprem.endpoint was found")
	}
	if hasEndpoint {
		return onPremEndpoint, true, warnings
	}
	warnings = append(warnings, "please specify grafana.otlp.onprem.endpoint")
	return "", false, warnings
}

// ResolveBasicAuthHeader builds the OTLP Authorization header entry from
// Grafana Cloud credentials. Both instanceID and apiKey must be present;
// if exactly one is set, a warning names the missing counterpart.
func ResolveBasicAuthHeader(instanceID int, apiKey string) (string, bool, []string) {
	hasKey := notBlank(apiKey)
	hasID := instanceID != 0
	if hasKey && hasID {
		userPass := fmt.Sprintf("%d:%s", instanceID, apiKey)
		encoded := base64.StdEncoding.EncodeToString([]byte(userPass))
		return fmt.Sprintf("Authorization=Basic %s", encoded), true, nil
	}

	var warnings []string
	if hasKey {
		warnings = append(warnings, "found grafana.otlp.cloud.apiKey but no grafana.otlp.cloud.instanceId")
	}
	if hasID {
		warnings = append(warnings, "found grafana.otlp.cloud.instanceId but no grafana.otlp.cloud.apiKey")
	}
	return "", false, warnings
}

// ResolveResourceAttributes merges derived service identity into the
// caller-supplied attributes and serializes the result as comma-joined
// key=value pairs. Caller-supplied keys are never overwritten and the input
// map is never mutated.
func ResolveResourceAttributes(callerAttrs map[string]string,
	applicationName, manifestName, manifestVersion, hostnameEnv, hostEnv string) string {

	attrs := make(map[string]string, len(callerAttrs)+3)
	for k, v := range callerAttrs {
		attrs[k] = v
	}

	fillAttribute(attrs, string(semconv.ServiceNameKey), applicationName, manifestName)
	fillAttribute(attrs, string(semconv.ServiceVersionKey), manifestVersion)
	fillAttribute(attrs, string(semconv.ServiceInstanceIDKey), hostnameEnv, hostEnv)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, attrs[k]))
	}
	return strings.Join(pairs, ",")
}

// fillAttribute sets key to the first non-blank candidate, but only when the
// map does not already define the key.
func fillAttribute(attrs map[string]string, key string, candidates ...string) {
	if _, ok := attrs[key]; ok {
		return
	}
	for _, v := range candidates {
		if notBlank(v) {
			attrs[key] = v
			return
		}
	}
}

// maskedHeaderLength is how much of the OTLP headers value survives masking.
const maskedHeaderLength = 24

// MaskAuthHeader returns a copy of props safe for logging: the OTLP headers
// value is truncated so credentials never reach log output. All other
// entries pass through unchanged; the input map is not mutated.
func MaskAuthHeader(props Properties) Properties {
	masked := make(Properties, len(props))
	for k, v := range props {
		if k == PropHeaders && len(v) > maskedHeaderLength {
			v = v[:maskedHeaderLength] + "..."
		}
		masked[k] = v
	}
	return masked
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
