package emissions

import (
	"fmt"
	"math"
)

// Unit conversions shared by every calculator.
const (
	// BtuPerMMBtu converts Btu to mmBtu, the basis of all emissions factors.
	BtuPerMMBtu = 1e6

	// KgPerMetricTon converts kilograms to the metric tons used for BESS containers.
	KgPerMetricTon = 1000.0
)

// Factors holds a per-pollutant coefficient, typically grams per mmBtu.
type Factors struct {
	CO2 float64 `yaml:"co2" json:"co2"`
	CH4 float64 `yaml:"ch4" json:"ch4"`
	N2O float64 `yaml:"n2o" json:"n2o"`
}

// Get returns the coefficient for p, or zero for an untracked pollutant.
func (f Factors) Get(p Pollutant) float64 {
	switch p {
	case CO2:
		return f.CO2
	case CH4:
		return f.CH4
	case N2O:
		return f.N2O
	default:
		return 0
	}
}

// FuelConstants are fuel energy densities.
type FuelConstants struct {
	// DieselBtuPerGallon is the energy content of diesel (EPA).
	DieselBtuPerGallon float64 `yaml:"diesel_btu_per_gallon" json:"diesel_btu_per_gallon"`

	// ResidualOilBtuPerGallon is the energy content of residual oil (EPA).
	ResidualOilBtuPerGallon float64 `yaml:"residual_oil_btu_per_gallon" json:"residual_oil_btu_per_gallon"`
}

// TruckConstants describe a heavy-haul diesel truck (GREET).
type TruckConstants struct {
	// BtuPerTonMile is the loaded-direction energy intensity.
	BtuPerTonMile float64 `yaml:"btu_per_ton_mile" json:"btu_per_ton_mile"`

	// EmptyBtuPerMile is the flat energy rate for the empty return.
	EmptyBtuPerMile float64 `yaml:"empty_btu_per_mile" json:"empty_btu_per_mile"`

	// MilesPerGallon is used only to back out fuel burned from distance.
	MilesPerGallon float64 `yaml:"miles_per_gallon" json:"miles_per_gallon"`

	// Combustion are the tailpipe emissions factors in g/mmBtu.
	Combustion Factors `yaml:"combustion" json:"combustion"`
}

// TankerConstants describe a residual-oil ocean tanker (GREET).
type TankerConstants struct {
	// BtuPerTonMile is the loaded-direction energy intensity.
	BtuPerTonMile float64 `yaml:"btu_per_ton_mile" json:"btu_per_ton_mile"`

	// Horsepower is the rated engine power of one tanker.
	Horsepower float64 `yaml:"horsepower" json:"horsepower"`

	// BackhaulLoadFactor is the fraction of rated horsepower used when empty.
	BackhaulLoadFactor float64 `yaml:"backhaul_load_factor" json:"backhaul_load_factor"`

	// AverageSpeedMPH converts the backhaul's hourly energy use to per-mile.
	AverageSpeedMPH float64 `yaml:"average_speed_mph" json:"average_speed_mph"`

	// BtuPerHPHour is the engine's brake-specific energy consumption.
	BtuPerHPHour float64 `yaml:"btu_per_hp_hour" json:"btu_per_hp_hour"`

	// EngineEfficiency is used only to back out fuel burned from distance.
	EngineEfficiency float64 `yaml:"engine_efficiency" json:"engine_efficiency"`

	// Combustion are the stack emissions factors in g/mmBtu.
	Combustion Factors `yaml:"combustion" json:"combustion"`
}

// ProductionConstants are upstream fuel-production emissions factors in g/mmBtu.
type ProductionConstants struct {
	Diesel      Factors `yaml:"diesel" json:"diesel"`
	ResidualOil Factors `yaml:"residual_oil" json:"residual_oil"`
}

// EmbodiedConstants are manufacturing emissions in g CO2e per unit of capacity.
type EmbodiedConstants struct {
	BESSPerKWh  float64 `yaml:"bess_per_kwh" json:"bess_per_kwh"`
	SolarPerKWp float64 `yaml:"solar_per_kwp" json:"solar_per_kwp"`
	WindPerKW   float64 `yaml:"wind_per_kw" json:"wind_per_kw"`
}

// GWP holds 100-year global warming potentials relative to CO2.
type GWP Factors

// CargoConstants convert target capacities into shipped tonnage.
type CargoConstants struct {
	// PVGramsPerKW is the mass of PV modules per kW of capacity.
	PVGramsPerKW float64 `yaml:"pv_grams_per_kw" json:"pv_grams_per_kw"`

	// GramsPerTon converts grams to short tons.
	GramsPerTon float64 `yaml:"grams_per_ton" json:"grams_per_ton"`

	// BESSContainerKg is the mass of one 20 ft BESS container.
	BESSContainerKg float64 `yaml:"bess_container_kg" json:"bess_container_kg"`

	// BESSContainerKWh is the energy capacity of one BESS container.
	BESSContainerKWh float64 `yaml:"bess_container_kwh" json:"bess_container_kwh"`

	// TurbineTons is the mass of one turbine (NPS 100C-24).
	TurbineTons float64 `yaml:"turbine_tons" json:"turbine_tons"`

	DieselPoundsPerGallon float64 `yaml:"diesel_pounds_per_gallon" json:"diesel_pounds_per_gallon"`
	PoundsPerTon          float64 `yaml:"pounds_per_ton" json:"pounds_per_ton"`
}

// Mode is a transport vehicle type.
type Mode string

// Transport modes.
const (
	ModeTanker Mode = "tanker"
	ModeTruck  Mode = "truck"
)

// Leg is one hop of a cargo route.
//
// The number of vehicles on the leg is Vehicles plus VehiclesPerUnit times the
// component's discrete unit count (turbines, BESS containers). The cargo is
// split evenly across those vehicles.
type Leg struct {
	Mode Mode `yaml:"mode" json:"mode"`

	// Miles is one-way for tankers and round-trip for trucks.
	Miles float64 `yaml:"miles" json:"miles"`

	Vehicles        float64 `yaml:"vehicles" json:"vehicles"`
	VehiclesPerUnit float64 `yaml:"vehicles_per_unit" json:"vehicles_per_unit"`
}

// Route is an ordered chain of legs.
type Route []Leg

// RouteConstants holds the route for each shipped component.
type RouteConstants struct {
	Wind   Route `yaml:"wind" json:"wind"`
	PV     Route `yaml:"pv" json:"pv"`
	BESS   Route `yaml:"bess" json:"bess"`
	Diesel Route `yaml:"diesel" json:"diesel"`
}

// Constants is the complete, explicit table of physical and emissions
// constants. Substitute a modified copy to run sensitivity analysis or to
// adopt a newer GWP dataset.
type Constants struct {
	Fuel       FuelConstants       `yaml:"fuel" json:"fuel"`
	Truck      TruckConstants      `yaml:"truck" json:"truck"`
	Tanker     TankerConstants     `yaml:"tanker" json:"tanker"`
	Production ProductionConstants `yaml:"production" json:"production"`
	Embodied   EmbodiedConstants   `yaml:"embodied" json:"embodied"`
	GWP        GWP                 `yaml:"gwp" json:"gwp"`
	Cargo      CargoConstants      `yaml:"cargo" json:"cargo"`
	Routes     RouteConstants      `yaml:"routes" json:"routes"`
}

// McMurdo is reached by tanker from the port of origin; the second tanker
// leg is flown with two vessels sharing the cargo (icebreaker escort). The
// South Pole Traverse then runs trucks overland, 1030 miles round-trip, or
// 100 miles for BESS containers which fly most of the way with LC-130s.
const (
	tankerMilesToMcMurdo   = 6900
	tankerMilesEscort      = 2415
	escortVessels          = 2
	traverseMiles          = 1030
	bessTruckMiles         = 100
	traverseTrucks         = 9
	trucksPerTurbine       = 7
	trucksPerBESSContainer = 1
)

// DefaultConstants returns the reference constants table. Each call returns
// a fresh value that the caller may modify.
func DefaultConstants() Constants {
	return Constants{
		Fuel: FuelConstants{
			DieselBtuPerGallon:      138700,
			ResidualOilBtuPerGallon: 149700,
		},
		Truck: TruckConstants{
			BtuPerTonMile:   684,
			EmptyBtuPerMile: 13567,
			MilesPerGallon:  5.6,
			Combustion: Factors{
				CO2: 89.77044869,
				CH4: 0.109408298,
				N2O: 0.000355609,
			},
		},
		Tanker: TankerConstants{
			BtuPerTonMile:      43,
			Horsepower:         19170,
			BackhaulLoadFactor: 0.70,
			AverageSpeedMPH:    20,
			BtuPerHPHour:       5439,
			EngineEfficiency:   0.50,
			Combustion: Factors{
				CO2: 262.9991694,
				CH4: 0.293135661,
				N2O: 0.006037729,
			},
		},
		Production: ProductionConstants{
			Diesel:      Factors{CO2: 12747.98, CH4: 109.519, N2O: 0.233},
			ResidualOil: Factors{CO2: 9670.93, CH4: 100.419, N2O: 0.162},
		},
		Embodied: EmbodiedConstants{
			BESSPerKWh:  220000,
			SolarPerKWp: 1100000,
			WindPerKW:   683700,
		},
		// AR6 GWP100.
		GWP: GWP{CO2: 1, CH4: 29.8, N2O: 273},
		Cargo: CargoConstants{
			PVGramsPerKW:          160,
			GramsPerTon:           907185,
			BESSContainerKg:       18000,
			BESSContainerKWh:      1240,
			TurbineTons:           19.8,
			DieselPoundsPerGallon: 6.5,
			PoundsPerTon:          2000,
		},
		Routes: RouteConstants{
			Wind:   standardRoute(Leg{Mode: ModeTruck, Miles: traverseMiles, VehiclesPerUnit: trucksPerTurbine}),
			PV:     standardRoute(Leg{Mode: ModeTruck, Miles: traverseMiles, Vehicles: traverseTrucks}),
			BESS:   standardRoute(Leg{Mode: ModeTruck, Miles: bessTruckMiles, VehiclesPerUnit: trucksPerBESSContainer}),
			Diesel: standardRoute(Leg{Mode: ModeTruck, Miles: traverseMiles, Vehicles: traverseTrucks}),
		},
	}
}

func standardRoute(last Leg) Route {
	return Route{
		{Mode: ModeTanker, Miles: tankerMilesToMcMurdo, Vehicles: 1},
		{Mode: ModeTanker, Miles: tankerMilesEscort, Vehicles: escortVessels},
		last,
	}
}

// Validate rejects tables that would divide by zero or propagate NaN.
func (c Constants) Validate() error {
	divisors := []struct {
		name  string
		value float64
	}{
		{"fuel.diesel_btu_per_gallon", c.Fuel.DieselBtuPerGallon},
		{"fuel.residual_oil_btu_per_gallon", c.Fuel.ResidualOilBtuPerGallon},
		{"truck.miles_per_gallon", c.Truck.MilesPerGallon},
		{"tanker.average_speed_mph", c.Tanker.AverageSpeedMPH},
		{"tanker.engine_efficiency", c.Tanker.EngineEfficiency},
		{"tanker.btu_per_hp_hour", c.Tanker.BtuPerHPHour},
		{"cargo.grams_per_ton", c.Cargo.GramsPerTon},
		{"cargo.bess_container_kwh", c.Cargo.BESSContainerKWh},
		{"cargo.pounds_per_ton", c.Cargo.PoundsPerTon},
	}
	for _, d := range divisors {
		if err := checkFinite(d.name, d.value); err != nil {
			return err
		}
		if d.value == 0 {
			return fmt.Errorf("%w: %s is zero", ErrDegenerateInput, d.name)
		}
	}

	routes := []struct {
		name  string
		route Route
	}{
		{"wind", c.Routes.Wind},
		{"pv", c.Routes.PV},
		{"bess", c.Routes.BESS},
		{"diesel", c.Routes.Diesel},
	}
	for _, r := range routes {
		if err := r.route.validate(); err != nil {
			return fmt.Errorf("routes.%s: %w", r.name, err)
		}
	}
	return nil
}

func (r Route) validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: route has no legs", ErrDegenerateInput)
	}
	for i, leg := range r {
		if leg.Mode != ModeTanker && leg.Mode != ModeTruck {
			return fmt.Errorf("%w: leg %d has unknown mode %q", ErrDegenerateInput, i, leg.Mode)
		}
		if leg.Vehicles == 0 && leg.VehiclesPerUnit == 0 {
			return fmt.Errorf("%w: leg %d has no vehicles", ErrDegenerateInput, i)
		}
		if err := checkFinite(fmt.Sprintf("leg %d miles", i), leg.Miles); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, name, v)
	}
	return nil
}
