package telemetry

import (
	"fmt"
	"strings"
)

// ParseAttributes parses a comma-separated list of key=value pairs into a
// map. It is the inverse of the resolver's resource-attribute serialization
// and also handles the otel.exporter.otlp.headers value, whose base64
// payload may itself contain '=' characters.
// Example input: "service.name=demo,service.version=1.2.3"
func ParseAttributes(input string) (map[string]string, error) {
	attributes := make(map[string]string)
	if input == "" {
		return attributes, nil
	}

	for _, pair := range strings.Split(input, ",") {
		trimmedPair := strings.TrimSpace(pair)
		if trimmedPair == "" {
			continue
		}

		parts := strings.SplitN(trimmedPair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid attribute format '%s': expected key=value", trimmedPair)
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("empty attribute key in '%s'", trimmedPair)
		}

		attributes[key] = strings.TrimSpace(parts[1])
	}

	return attributes, nil
}
