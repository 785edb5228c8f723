package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/southpole/internal/config"
	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/report"
	"github.com/rshade/southpole/internal/sweep"
)

// SweepParams holds the parameters for the sweep command.
// Exported for testing.
type SweepParams struct {
	GridPath    string
	Output      string
	Concurrency int
	BatchSize   int
	MetricsFile string
}

// SweepFailedError reports a sweep in which some scenarios failed. The
// results, including the failures, have already been rendered.
type SweepFailedError struct {
	RunID  string
	Failed int
	Total  int
}

func (e *SweepFailedError) Error() string {
	return fmt.Sprintf("sweep %s: %d of %d scenarios failed", e.RunID, e.Failed, e.Total)
}

// NewSweepCmd creates the "sweep" command, which evaluates every point of a
// parameter grid.
func NewSweepCmd() *cobra.Command {
	var params SweepParams

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a grid of deployments",
		Long: `Expand a sweep file's axes into every combination of parameter values and
evaluate them concurrently. A scenario that fails is reported with its error
and does not stop the others; the command exits non-zero if any failed.

Defaults for --concurrency, --batch-size and --metrics-file come from the
SOUTHPOLE_CONCURRENCY, SOUTHPOLE_BATCH_SIZE and SOUTHPOLE_METRICS_FILE
environment variables.`,
		Example: `  southpole sweep --grid grid.yaml
  southpole sweep --grid grid.yaml --concurrency 8 --output ndjson > results.ndjson
  southpole sweep --grid grid.yaml --metrics-file /var/lib/node_exporter/southpole.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSweep(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.GridPath, "grid", "", "Path to a sweep YAML file (required)")
	cmd.Flags().StringVar(&params.Output, "output", report.FormatTable, "Output format (table, json, ndjson)")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0, "Batches evaluated concurrently")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", 0, "Scenarios per batch (1-1000)")
	cmd.Flags().StringVar(&params.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	_ = cmd.MarkFlagRequired("grid")

	return cmd
}

// resolveSweepOptions merges explicitly set flags over settings.
func resolveSweepOptions(cmd *cobra.Command, params SweepParams, s config.Settings) (sweep.Options, string, error) {
	opts := sweep.Options{
		Concurrency: s.Concurrency,
		BatchSize:   s.BatchSize,
		CacheSize:   s.CacheSize,
	}
	metricsFile := s.MetricsFile

	if cmd.Flags().Changed("concurrency") {
		if params.Concurrency < 1 {
			return sweep.Options{}, "", fmt.Errorf("--concurrency must be >= 1, got %d", params.Concurrency)
		}
		opts.Concurrency = params.Concurrency
	}
	if cmd.Flags().Changed("batch-size") {
		opts.BatchSize = params.BatchSize
	}
	if cmd.Flags().Changed("metrics-file") {
		metricsFile = params.MetricsFile
	}
	return opts, metricsFile, nil
}

func executeSweep(cmd *cobra.Command, params SweepParams) error {
	if !report.ValidSweepFormat(params.Output) {
		return fmt.Errorf("%w: %q (want table, json or ndjson)", report.ErrUnknownFormat, params.Output)
	}
	ctx := cmd.Context()

	settings, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}
	opts, metricsFile, err := resolveSweepOptions(cmd, params, settings)
	if err != nil {
		return err
	}

	file, err := config.LoadSweepFile(params.GridPath)
	if err != nil {
		return err
	}
	inputs, err := file.Grid.Expand()
	if err != nil {
		return err
	}
	calc, err := emissions.NewCalculator(file.Constants)
	if err != nil {
		return err
	}

	opts.OnProgress = func(p sweep.ProgressSnapshot) {
		logger.Debug().
			Int("processed", p.ProcessedItems).
			Int("total", p.TotalItems).
			Float64("percent", p.PercentComplete).
			Msg("sweep progress")
	}
	runner, err := sweep.NewRunner(calc, opts)
	if err != nil {
		return err
	}

	rep, err := runner.Run(ctx, inputs)
	if err != nil {
		return err
	}

	if err := newRenderer(cmd).Sweep(rep, params.Output); err != nil {
		return err
	}

	if metricsFile != "" {
		if err := runner.Metrics().WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Debug().Str("path", metricsFile).Msg("metrics written")
	}

	if rep.Failed > 0 {
		return &SweepFailedError{RunID: rep.RunID, Failed: rep.Failed, Total: len(rep.Results)}
	}
	return nil
}
