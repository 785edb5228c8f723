package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/southpole/internal/config"
	"github.com/rshade/southpole/internal/logging"
)

type settingsKey struct{}

// setupLogging loads settings from the environment, applies logging flag
// overrides, and stores the logger, trace ID and settings in cmd's context.
func setupLogging(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	settings, err := config.LoadSettings(envFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		settings.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		settings.LogFormat, _ = cmd.Flags().GetString("log-format")
	}
	if cmd.Flags().Changed("log-caller") {
		settings.LogCaller, _ = cmd.Flags().GetBool("log-caller")
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		settings.LogLevel = "debug"
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	base := logging.NewLogger(settings.LoggingConfig(), cmd.ErrOrStderr()).
		With().Str("trace_id", traceID).Logger()
	logger = logging.ComponentLogger(base, "cli")
	ctx = base.WithContext(ctx)
	ctx = context.WithValue(ctx, settingsKey{}, settings)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// settingsFromContext returns the settings stored by setupLogging, or the
// environment-derived defaults when the command runs without the root.
func settingsFromContext(ctx context.Context) (config.Settings, error) {
	if s, ok := ctx.Value(settingsKey{}).(config.Settings); ok {
		return s, nil
	}
	return config.LoadSettings("")
}
