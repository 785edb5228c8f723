// Package scenario evaluates a complete deployment: shipping every component
// to the pole, manufacturing it, and optionally producing the fuel the fleet
// burns, consolidated into one pollutant record and a CO2-equivalent total.
package scenario

import (
	"context"
	"fmt"
	"maps"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/logging"
)

// CategoryFuelProduction is the transport-map key for upstream fuel
// production emissions.
const CategoryFuelProduction = "fuel_production"

// FuelMiles are the distances whose fuel production should be charged.
type FuelMiles struct {
	TankerMiles float64 `yaml:"tanker_miles" json:"tanker_miles"`
	TruckMiles  float64 `yaml:"truck_miles" json:"truck_miles"`
}

// Input is one named scenario.
type Input struct {
	Name       string                  `yaml:"name" json:"name"`
	Capacities emissions.ScenarioInput `yaml:",inline" json:"capacities"`

	// FuelProduction, when set, adds upstream fuel-production emissions for
	// the given distances.
	FuelProduction *FuelMiles `yaml:"fuel_production,omitempty" json:"fuel_production,omitempty"`
}

// Result is the full breakdown of one evaluated scenario. All masses are grams.
type Result struct {
	Name      string                        `json:"name"`
	Input     emissions.ScenarioInput       `json:"input"`
	Shipments map[string]emissions.Shipment `json:"shipments"`
	Transport emissions.TransportBreakdown  `json:"transport"`
	Embodied  emissions.EmbodiedMix         `json:"embodied"`

	// FuelProduction is nil unless requested by the input.
	FuelProduction emissions.Record `json:"fuel_production,omitempty"`

	Total     emissions.Record `json:"total"`
	TotalCO2e float64          `json:"total_co2e"`

	// CategoryCO2e is the CO2e of each transport, embodied and fuel
	// production category.
	CategoryCO2e map[string]float64 `json:"category_co2e"`
}

// Clone returns a copy of r that shares no maps with it.
func (r Result) Clone() Result {
	out := r
	out.Shipments = maps.Clone(r.Shipments)
	out.Embodied = maps.Clone(r.Embodied)
	out.CategoryCO2e = maps.Clone(r.CategoryCO2e)
	if r.Transport != nil {
		out.Transport = make(emissions.TransportBreakdown, len(r.Transport))
		for k, v := range r.Transport {
			out.Transport[k] = v.Clone()
		}
	}
	if r.FuelProduction != nil {
		out.FuelProduction = r.FuelProduction.Clone()
	}
	if r.Total != nil {
		out.Total = r.Total.Clone()
	}
	return out
}

// Categories returns the result's category names in display order:
// transport components, fuel production, then embodied categories.
func (r Result) Categories() []string {
	names := []string{
		emissions.TransportWind,
		emissions.TransportPV,
		emissions.TransportBESS,
		emissions.TransportDiesel,
	}
	if r.FuelProduction != nil {
		names = append(names, CategoryFuelProduction)
	}
	return append(names,
		emissions.EmbodiedBESS,
		emissions.EmbodiedSolar,
		emissions.EmbodiedWind,
		emissions.EmbodiedDiesel,
	)
}

// Evaluate runs the full model for in against calc.
func Evaluate(ctx context.Context, calc *emissions.Calculator, in Input) (Result, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "scenario").
		With().Str("scenario", in.Name).Logger()

	shipments, err := calc.Shipments(in.Capacities)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", in.Name, err)
	}

	transport, err := calc.ScenarioTransport(in.Capacities)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: transport: %w", in.Name, err)
	}

	c := in.Capacities
	embodied := calc.EmbodiedRenewable(c.SolarKW, c.WindKW, c.BESSEnergyKWh, c.DieselGallons)

	consolidateInput := make(map[string]emissions.Record, len(transport)+1)
	for k, v := range transport {
		consolidateInput[k] = v
	}

	var fuel emissions.Record
	if in.FuelProduction != nil {
		fuel = calc.FuelProduction(in.FuelProduction.TankerMiles, in.FuelProduction.TruckMiles)
		consolidateInput[CategoryFuelProduction] = fuel
	}

	total, err := emissions.Consolidate(consolidateInput, embodied)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", in.Name, err)
	}

	totalCO2e, err := calc.CO2Equivalent(total)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", in.Name, err)
	}

	categories, err := categoryCO2e(calc, consolidateInput, embodied)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", in.Name, err)
	}

	log.Debug().
		Float64("total_co2e_g", totalCO2e).
		Int("categories", len(categories)).
		Msg("scenario evaluated")

	return Result{
		Name:           in.Name,
		Input:          c,
		Shipments:      shipments,
		Transport:      transport,
		Embodied:       embodied,
		FuelProduction: fuel,
		Total:          total,
		TotalCO2e:      totalCO2e,
		CategoryCO2e:   categories,
	}, nil
}

// categoryCO2e converts every category to CO2e. Embodied scalars already are.
func categoryCO2e(
	calc *emissions.Calculator,
	records map[string]emissions.Record,
	embodied emissions.EmbodiedMix,
) (map[string]float64, error) {
	out := make(map[string]float64, len(records)+len(embodied))
	for name, r := range records {
		v, err := calc.CO2Equivalent(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	for name, entry := range embodied {
		switch entry.Kind() {
		case emissions.EntryScalar:
			v, _ := entry.Scalar()
			out[name] = v
		case emissions.EntryBreakdown:
			r, _ := entry.Breakdown()
			v, err := calc.CO2Equivalent(r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out[name] = v
		}
	}
	return out, nil
}
