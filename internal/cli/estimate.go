package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/southpole/internal/config"
	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/report"
	"github.com/rshade/southpole/internal/scenario"
)

// EstimateParams holds the parameters for the estimate command.
// Exported for testing.
type EstimateParams struct {
	// File mode
	ScenarioPath string

	// Flag mode
	Name            string
	Capacities      emissions.ScenarioInput
	FuelTankerMiles float64
	FuelTruckMiles  float64

	Output string
}

// capacityFlags are the flag-mode inputs, which cannot be combined with
// --scenario.
//
//nolint:gochecknoglobals // Static flag list.
var capacityFlags = []string{
	"name", "solar-kw", "turbine-power-kw", "wind-kw", "bess-power-kw",
	"bess-energy-kwh", "diesel-gallons", "fuel-tanker-miles", "fuel-truck-miles",
}

// NewEstimateCmd creates the "estimate" command, which evaluates one
// scenario given by flags or every scenario in a scenario file.
func NewEstimateCmd() *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate emissions for one or more deployments",
		Long: `Evaluate transport, embodied and (optionally) fuel-production emissions for
a deployment, reported per category and as a consolidated CO2-equivalent total.

The deployment is given either by capacity flags or by a scenario file, not both.`,
		Example: `  southpole estimate --solar-kw 5000 --wind-kw 20000 --turbine-power-kw 100
  southpole estimate --diesel-gallons 124000 --fuel-tanker-miles 6900 --fuel-truck-miles 1030
  southpole estimate --scenario scenarios.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.ScenarioPath, "scenario", "", "Path to a scenario YAML file")
	cmd.Flags().StringVar(&params.Name, "name", "cli", "Scenario name in flag mode")
	cmd.Flags().Float64Var(&params.Capacities.SolarKW, "solar-kw", 0, "PV capacity (kW)")
	cmd.Flags().Float64Var(&params.Capacities.TurbinePowerKW, "turbine-power-kw", 0, "Rated power of one wind turbine (kW)")
	cmd.Flags().Float64Var(&params.Capacities.WindKW, "wind-kw", 0, "Total wind capacity (kW)")
	cmd.Flags().Float64Var(&params.Capacities.BESSPowerKW, "bess-power-kw", 0, "Battery power rating (kW)")
	cmd.Flags().Float64Var(&params.Capacities.BESSEnergyKWh, "bess-energy-kwh", 0, "Battery energy capacity (kWh)")
	cmd.Flags().Float64Var(&params.Capacities.DieselGallons, "diesel-gallons", 0, "Diesel delivered (gallons)")
	cmd.Flags().Float64Var(&params.FuelTankerMiles, "fuel-tanker-miles", 0, "Tanker miles whose fuel production is charged")
	cmd.Flags().Float64Var(&params.FuelTruckMiles, "fuel-truck-miles", 0, "Truck miles whose fuel production is charged")
	cmd.Flags().StringVar(&params.Output, "output", report.FormatTable, "Output format (table, json)")

	return cmd
}

// ValidateEstimateFlags checks that file mode and flag mode are not mixed
// and that the output format is supported.
func ValidateEstimateFlags(cmd *cobra.Command, params EstimateParams) error {
	if !report.ValidFormat(params.Output) {
		return fmt.Errorf("%w: %q (want table or json)", report.ErrUnknownFormat, params.Output)
	}
	if params.ScenarioPath == "" {
		return nil
	}
	for _, name := range capacityFlags {
		if cmd.Flags().Changed(name) {
			return fmt.Errorf("--%s cannot be combined with --scenario", name)
		}
	}
	return nil
}

func executeEstimate(cmd *cobra.Command, params EstimateParams) error {
	if err := ValidateEstimateFlags(cmd, params); err != nil {
		return err
	}
	ctx := cmd.Context()
	renderer := newRenderer(cmd)

	if params.ScenarioPath == "" {
		in := scenario.Input{Name: params.Name, Capacities: params.Capacities}
		if cmd.Flags().Changed("fuel-tanker-miles") || cmd.Flags().Changed("fuel-truck-miles") {
			in.FuelProduction = &scenario.FuelMiles{
				TankerMiles: params.FuelTankerMiles,
				TruckMiles:  params.FuelTruckMiles,
			}
		}
		res, err := scenario.Evaluate(ctx, emissions.Default(), in)
		if err != nil {
			return err
		}
		return renderer.Scenario(res, params.Output)
	}

	file, err := config.LoadScenarioFile(params.ScenarioPath)
	if err != nil {
		return err
	}
	calc, err := emissions.NewCalculator(file.Constants)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("file", params.ScenarioPath).
		Int("scenarios", len(file.Scenarios)).
		Msg("evaluating scenario file")

	results := make([]scenario.Result, 0, len(file.Scenarios))
	var errs []error
	for _, in := range file.Scenarios {
		res, evalErr := scenario.Evaluate(ctx, calc, in)
		if evalErr != nil {
			errs = append(errs, evalErr)
			continue
		}
		results = append(results, res)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return renderer.Scenarios(results, params.Output)
}
