package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve the OpenTelemetry configuration and print it",
	Long: `Resolve the configured Grafana Cloud and on-prem OTLP settings into the
final OpenTelemetry property map and print it, with credentials masked.
Inconsistent settings are reported as warnings; the command still succeeds
so it can run in environments where telemetry is intentionally unconfigured.`,
	RunE: checkCmdFunc,
}

func checkCmdFunc(cmd *cobra.Command, _ []string) error {
	props, err := resolveFromFlags(cmd)
	if err != nil {
		return err
	}

	masked := autoconf.MaskAuthHeader(props)
	keys := make([]string, 0, len(masked))
	for k := range masked {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, masked[k])
	}
	return nil
}
