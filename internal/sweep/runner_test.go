package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/scenario"
)

func TestRunnerRun(t *testing.T) {
	g := Grid{
		Base: baseInput(),
		Axes: map[string][]float64{
			AxisTurbinePowerKW: {0, 100},
			AxisSolarKW:        {1000, 5000},
		},
	}
	inputs, err := g.Expand()
	require.NoError(t, err)

	runner, err := NewRunner(emissions.Default(), Options{Concurrency: 3, BatchSize: 1})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), inputs)
	require.NoError(t, err)

	_, err = ulid.Parse(report.RunID)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	assert.Equal(t, 2, report.Failed)

	for i, res := range report.Results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, inputs[i].Name, res.Input.Name)
		if res.Input.Capacities.TurbinePowerKW == 0 {
			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, emissions.ErrDegenerateInput)
			continue
		}
		require.NoError(t, res.Err)
		assert.Equal(t, inputs[i].Name, res.Evaluation.Name)
		assert.Positive(t, res.Evaluation.TotalCO2e)
	}

	m := runner.Metrics()
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(StatusOK)), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(StatusError)), 0)
}

func TestRunnerMatchesDirectEvaluation(t *testing.T) {
	runner, err := NewRunner(nil, Options{})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), []scenario.Input{baseInput()})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	direct, err := scenario.Evaluate(context.Background(), emissions.Default(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, direct.Total, report.Results[0].Evaluation.Total)
	assert.Equal(t, direct.TotalCO2e, report.Results[0].Evaluation.TotalCO2e)
}

func TestRunnerCache(t *testing.T) {
	first := baseInput()
	second := baseInput()
	second.Name = "duplicate"

	runner, err := NewRunner(emissions.Default(), Options{Concurrency: 1})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), []scenario.Input{first, second})
	require.NoError(t, err)

	assert.False(t, report.Results[0].Cached)
	assert.True(t, report.Results[1].Cached)
	assert.Equal(t, 1, report.CacheHits)
	assert.Equal(t, "duplicate", report.Results[1].Evaluation.Name)
	assert.Equal(t, report.Results[0].Evaluation.TotalCO2e, report.Results[1].Evaluation.TotalCO2e)
	assert.InDelta(t, 1.0, testutil.ToFloat64(runner.Metrics().CacheHits), 0)

	t.Run("cached results do not alias", func(t *testing.T) {
		want := report.Results[0].Evaluation.Total[emissions.CO2]
		report.Results[1].Evaluation.Total[emissions.CO2] = -1
		report.Results[1].Evaluation.Transport[emissions.TransportPV][emissions.CH4] = -1
		assert.InDelta(t, want, report.Results[0].Evaluation.Total[emissions.CO2], 0)

		third, runErr := runner.Run(context.Background(), []scenario.Input{first})
		require.NoError(t, runErr)
		require.True(t, third.Results[0].Cached)
		assert.InDelta(t, want, third.Results[0].Evaluation.Total[emissions.CO2], 0)
		assert.Positive(t, third.Results[0].Evaluation.Transport[emissions.TransportPV][emissions.CH4])
	})

	t.Run("fuel production is part of the key", func(t *testing.T) {
		withFuel := baseInput()
		withFuel.FuelProduction = &scenario.FuelMiles{TankerMiles: 6900, TruckMiles: 1030}
		again, runErr := runner.Run(context.Background(), []scenario.Input{withFuel})
		require.NoError(t, runErr)
		assert.False(t, again.Results[0].Cached)
	})
}

func TestRunnerCancelled(t *testing.T) {
	runner, err := NewRunner(emissions.Default(), Options{BatchSize: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Run(ctx, []scenario.Input{baseInput(), baseInput()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerEmpty(t *testing.T) {
	runner, err := NewRunner(emissions.Default(), Options{})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.NotEmpty(t, report.RunID)
}

func TestNewRunnerInvalidBatchSize(t *testing.T) {
	_, err := NewRunner(emissions.Default(), Options{BatchSize: 5000})
	assert.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestMetricsWriteTextfile(t *testing.T) {
	runner, err := NewRunner(emissions.Default(), Options{})
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), []scenario.Input{baseInput()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sweep.prom")
	require.NoError(t, runner.Metrics().WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `southpole_sweep_evaluations_total{status="ok"} 1`)
	assert.Contains(t, string(data), "southpole_sweep_evaluation_duration_seconds_count 1")

	count, err := testutil.GatherAndCount(runner.Metrics().Gatherer(), "southpole_sweep_cache_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
