// Package app provides the entry point for the otel-starter command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
	"github.com/grafana/otel-starter-go/pkg/config"
	"github.com/grafana/otel-starter-go/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "otel-starter",
	DisableAutoGenTag: true,
	Short:             "otel-starter resolves and applies Grafana OTLP configuration",
	Long: `otel-starter derives OpenTelemetry SDK configuration from Grafana Cloud
credentials, on-prem OTLP settings, and process metadata.

It resolves the exporter protocol, endpoint, authentication headers, and
resource attributes the same way the Grafana OTLP starter does inside an
application, so the resulting configuration can be inspected ahead of a
deployment or exercised end to end against a collector.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the otel-starter CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML file with grafana.otlp settings")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolveFromFlags loads the settings named by the --config flag, resolves
// them, and logs every warning the resolver produced. Warnings are never
// fatal.
func resolveFromFlags(cmd *cobra.Command) (autoconf.Properties, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	props, warnings := autoconf.Resolve(settings)
	for _, warning := range warnings {
		logger.Warn(warning)
	}
	return props, nil
}
