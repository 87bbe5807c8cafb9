package app

import (
	"context"

	"github.com/spf13/cobra"
	otellog "go.opentelemetry.io/otel/log"

	"github.com/grafana/otel-starter-go/pkg/autoconf"
	"github.com/grafana/otel-starter-go/pkg/logger"
	"github.com/grafana/otel-starter-go/pkg/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build telemetry providers and emit a sample span, metric, and log record",
	Long: `Resolve the configuration, build the OpenTelemetry providers, emit one
span, one counter increment, and one log record, then flush and shut down.
If provider construction fails, telemetry is disabled and the command still
exits successfully, matching the behavior applications get from the starter.`,
	RunE: runCmdFunc,
}

func runCmdFunc(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	props, err := resolveFromFlags(cmd)
	if err != nil {
		return err
	}
	logger.Infow("using config properties", "properties", autoconf.MaskAuthHeader(props))

	provider, err := telemetry.NewProvider(ctx, props)
	if err != nil {
		logger.Warnf("unable to create OpenTelemetry providers, telemetry is disabled: %v", err)
		provider = telemetry.NoopProvider()
	}
	defer func() {
		// Flush with a fresh context so buffered telemetry survives
		// cancellation of the command context.
		if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Errorf("error shutting down telemetry providers: %v", err)
		}
	}()

	emitSampleTelemetry(ctx, provider)
	return nil
}

// emitSampleTelemetry exercises all three signals once.
func emitSampleTelemetry(ctx context.Context, provider *telemetry.Provider) {
	tracer := provider.TracerProvider().Tracer("otel-starter")
	spanCtx, span := tracer.Start(ctx, "startup-check")
	span.End()

	meter := provider.MeterProvider().Meter("otel-starter")
	counter, err := meter.Int64Counter("startup.checks")
	if err != nil {
		logger.Warnf("unable to create sample counter: %v", err)
	} else {
		counter.Add(spanCtx, 1)
	}

	var record otellog.Record
	record.SetSeverity(otellog.SeverityInfo)
	record.SetBody(otellog.StringValue("startup check complete"))
	provider.LoggerProvider().Logger("otel-starter").Emit(spanCtx, record)

	logger.Info("sample telemetry emitted")
}
