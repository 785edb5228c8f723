// Package cli implements the southpole command line.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/southpole/internal/config"
	"github.com/rshade/southpole/internal/report"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newRenderer returns a renderer for cmd's output, styled only on terminals.
func newRenderer(cmd *cobra.Command) report.Renderer {
	out := cmd.OutOrStdout()
	return report.Renderer{Out: out, Styled: isTerminal(out)}
}

// NewRootCmd creates the root command for the southpole CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "southpole",
		Short: "Greenhouse-gas model for South Pole energy logistics",
		Long: `southpole estimates the greenhouse-gas emissions of supplying the South Pole
station with renewable generation, battery storage, and diesel: shipping every
component by tanker and overland traverse, manufacturing it, and producing the
fuel the fleet burns.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (console, json)")
	cmd.PersistentFlags().Bool("log-caller", false, "add file:line to log events")
	cmd.PersistentFlags().String("env-file", config.DefaultDotenvPath, "dotenv file with SOUTHPOLE_* settings")
	cmd.AddCommand(NewEstimateCmd(), NewSweepCmd(), NewConstantsCmd())

	return cmd
}

const rootCmdExample = `  # Evaluate one deployment from flags
  southpole estimate --solar-kw 5000 --wind-kw 20000 --turbine-power-kw 100 \
    --bess-energy-kwh 12400 --diesel-gallons 2000

  # Evaluate every scenario in a file as JSON
  southpole estimate --scenario scenarios.yaml --output json

  # Run a sensitivity sweep and export metrics
  southpole sweep --grid grid.yaml --output ndjson --metrics-file sweep.prom

  # Print the constants table, with a file's overrides applied
  southpole constants --scenario scenarios.yaml`
