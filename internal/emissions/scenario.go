package emissions

import (
	"fmt"
	"math"
)

// Transport breakdown keys.
const (
	TransportWind   = "wind_turbines_transport"
	TransportPV     = "pv_panels_transport"
	TransportBESS   = "bess_units_transport"
	TransportDiesel = "diesel_transport"
)

// ScenarioInput holds the target capacities of a deployment.
type ScenarioInput struct {
	// SolarKW is the PV capacity in kW.
	SolarKW float64 `yaml:"solar_kw" json:"solar_kw"`

	// TurbinePowerKW is the rating of one wind turbine.
	TurbinePowerKW float64 `yaml:"turbine_power_kw" json:"turbine_power_kw"`

	// WindKW is the total wind capacity.
	WindKW float64 `yaml:"wind_kw" json:"wind_kw"`

	// BESSPowerKW is carried for reporting; shipped weight depends on energy only.
	BESSPowerKW float64 `yaml:"bess_power_kw" json:"bess_power_kw"`

	// BESSEnergyKWh is the total battery energy capacity.
	BESSEnergyKWh float64 `yaml:"bess_energy_kwh" json:"bess_energy_kwh"`

	// DieselGallons is the diesel volume to deliver.
	DieselGallons float64 `yaml:"diesel_gallons" json:"diesel_gallons"`
}

// Validate rejects non-finite fields and a zero turbine rating when wind
// capacity is requested.
func (in ScenarioInput) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"solar_kw", in.SolarKW},
		{"turbine_power_kw", in.TurbinePowerKW},
		{"wind_kw", in.WindKW},
		{"bess_power_kw", in.BESSPowerKW},
		{"bess_energy_kwh", in.BESSEnergyKWh},
		{"diesel_gallons", in.DieselGallons},
	}
	for _, f := range fields {
		if err := checkFinite(f.name, f.value); err != nil {
			return err
		}
	}
	if in.WindKW != 0 && in.TurbinePowerKW == 0 {
		return fmt.Errorf("%w: turbine_power_kw is zero with wind_kw = %v", ErrDegenerateInput, in.WindKW)
	}
	return nil
}

// Shipment is the tonnage and discrete unit count of one shipped component.
type Shipment struct {
	Tons  float64 `json:"tons"`
	Units float64 `json:"units"`
}

// Shipments converts target capacities into shipped tonnage:
//   - wind: one turbine per TurbinePowerKW, TurbineTons each
//   - pv: PVGramsPerKW per kW, in short tons
//   - bess: one container per BESSContainerKWh, BESSContainerKg each, in metric tons
//   - diesel: DieselPoundsPerGallon per gallon, in short tons
//
// PV and diesel have no discrete units.
func (calc *Calculator) Shipments(in ScenarioInput) (map[string]Shipment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	cargo := calc.c.Cargo

	var turbines float64
	if in.WindKW != 0 {
		turbines = in.WindKW / in.TurbinePowerKW
	}
	containers := in.BESSEnergyKWh / cargo.BESSContainerKWh

	return map[string]Shipment{
		TransportWind: {Tons: turbines * cargo.TurbineTons, Units: turbines},
		TransportPV:   {Tons: in.SolarKW * cargo.PVGramsPerKW / cargo.GramsPerTon},
		TransportBESS: {
			Tons:  containers * (cargo.BESSContainerKg / KgPerMetricTon),
			Units: containers,
		},
		TransportDiesel: {Tons: (in.DieselGallons * cargo.DieselPoundsPerGallon) / cargo.PoundsPerTon},
	}, nil
}

// ScenarioTransport routes each component's tonnage through its route and
// returns the summed leg emissions per component. Embodied and production
// emissions are not included; combine with EmbodiedRenewable via Consolidate.
func (calc *Calculator) ScenarioTransport(in ScenarioInput) (TransportBreakdown, error) {
	shipments, err := calc.Shipments(in)
	if err != nil {
		return nil, err
	}

	routes := map[string]Route{
		TransportWind:   calc.c.Routes.Wind,
		TransportPV:     calc.c.Routes.PV,
		TransportBESS:   calc.c.Routes.BESS,
		TransportDiesel: calc.c.Routes.Diesel,
	}

	out := make(TransportBreakdown, len(routes))
	for name, route := range routes {
		r, routeErr := calc.RouteEmissions(route, shipments[name])
		if routeErr != nil {
			return nil, fmt.Errorf("%s: %w", name, routeErr)
		}
		out[name] = r
	}
	return out, nil
}

// RouteEmissions sums the emissions of every leg of route carrying s.
//
// On each leg the cargo is split evenly across the leg's vehicles. Legs with
// a fixed vehicle count run even when s is empty, so an empty shipment still
// emits the tanker backhaul and the empty truck returns. A per-unit leg with
// no units has no vehicles to split over and yields ErrDegenerateInput.
func (calc *Calculator) RouteEmissions(route Route, s Shipment) (Record, error) {
	legs := make([]Record, 0, len(route))
	for i, leg := range route {
		vehicles := leg.Vehicles + leg.VehiclesPerUnit*s.Units

		if vehicles == 0 {
			return nil, fmt.Errorf("%w: leg %d has %v tons and no vehicles", ErrDegenerateInput, i, s.Tons)
		}
		cargo := s.Tons / vehicles

		var r Record
		switch leg.Mode {
		case ModeTanker:
			r = calc.TankerLeg(leg.Miles, cargo, vehicles)
		case ModeTruck:
			r = calc.TruckLeg(leg.Miles, cargo, vehicles)
		default:
			return nil, fmt.Errorf("%w: leg %d has unknown mode %q", ErrDegenerateInput, i, leg.Mode)
		}
		legs = append(legs, r)
	}

	total := Sum(legs...)
	for p, v := range total {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s", ErrNonFinite, p)
		}
	}
	return total, nil
}

// TransportBreakdown maps a transport key to its emissions.
type TransportBreakdown map[string]Record
