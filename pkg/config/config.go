// Package config loads the grafana.otlp settings surface from an optional
// YAML file and the process environment, producing the resolver input.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
	"github.com/grafana/otel-starter-go/pkg/env"
	"github.com/grafana/otel-starter-go/pkg/versions"
)

// Configuration keys. The names match the Grafana OTLP starter property
// surface so existing application configuration keeps working; in the
// environment they become GRAFANA_OTLP_CLOUD_INSTANCEID and friends.
const (
	KeyCloudInstanceID  = "grafana.otlp.cloud.instanceId"
	KeyCloudAPIKey      = "grafana.otlp.cloud.apiKey" //nolint:gosec // config key name, not a credential
	KeyCloudZone        = "grafana.otlp.cloud.zone"
	KeyOnPremEndpoint   = "grafana.otlp.onprem.endpoint"
	KeyOnPremProtocol   = "grafana.otlp.onprem.protocol"
	KeyDebugLogging     = "grafana.otlp.debugLogging"
	KeyGlobalAttributes = "grafana.otlp.globalAttributes"
	KeyApplicationName  = "grafana.otlp.applicationName"
)

// Load reads settings from the YAML file at path (skipped when path is
// empty) and the process environment. Environment variables take precedence
// over file values.
func Load(path string) (autoconf.Settings, error) {
	return LoadWithEnv(path, &env.OSReader{})
}

// LoadWithEnv is Load with an injectable environment reader for the
// HOSTNAME and HOST fallbacks used for service.instance.id.
func LoadWithEnv(path string, envReader env.Reader) (autoconf.Settings, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return autoconf.Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	manifestName, manifestVersion := versions.AppInfo()

	return autoconf.Settings{
		Cloud: autoconf.CloudSettings{
			InstanceID: v.GetInt(KeyCloudInstanceID),
			APIKey:     v.GetString(KeyCloudAPIKey),
			Zone:       v.GetString(KeyCloudZone),
		},
		OnPrem: autoconf.OnPremSettings{
			Endpoint: v.GetString(KeyOnPremEndpoint),
			Protocol: v.GetString(KeyOnPremProtocol),
		},
		DebugLogging:     v.GetBool(KeyDebugLogging),
		GlobalAttributes: v.GetStringMapString(KeyGlobalAttributes),
		ApplicationName:  v.GetString(KeyApplicationName),
		ManifestName:     manifestName,
		ManifestVersion:  manifestVersion,
		Hostname:         envReader.Getenv("HOSTNAME"),
		Host:             envReader.Getenv("HOST"),
	}, nil
}
