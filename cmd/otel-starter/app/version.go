package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grafana/otel-starter-go/pkg/versions"
)

// newVersionCmd creates a new version command
func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version of otel-starter",
		Long:  `Display detailed version information about otel-starter, including version number, git commit, build date, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()

			if jsonOutput {
				return printJSONVersionInfo(cmd, info)
			}
			printVersionInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information as JSON")

	return cmd
}

// printVersionInfo prints the version information
func printVersionInfo(cmd *cobra.Command, info versions.VersionInfo) {
	fmt.Fprintf(cmd.OutOrStdout(), "otel-starter %s\n", info.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", info.Commit)
	fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", info.BuildDate)
	fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", info.Platform)
}

// printJSONVersionInfo prints the version information as JSON
func printJSONVersionInfo(cmd *cobra.Command, info versions.VersionInfo) error {
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal version info: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
