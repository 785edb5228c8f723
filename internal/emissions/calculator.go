package emissions

// Calculator evaluates the emissions model against a fixed constants table.
// The zero value is not usable; construct with NewCalculator or Default.
type Calculator struct {
	c Constants
}

// NewCalculator validates c and returns a Calculator bound to a copy of it.
func NewCalculator(c Constants) (*Calculator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{c: c.clone()}, nil
}

// Default returns a Calculator bound to DefaultConstants.
func Default() *Calculator {
	return &Calculator{c: DefaultConstants()}
}

// Constants returns a copy of the table the calculator was built with.
func (calc *Calculator) Constants() Constants {
	return calc.c.clone()
}

// clone copies the route slices so a caller cannot mutate a Calculator's
// table through a returned or supplied value.
func (c Constants) clone() Constants {
	out := c
	out.Routes = RouteConstants{
		Wind:   append(Route(nil), c.Routes.Wind...),
		PV:     append(Route(nil), c.Routes.PV...),
		BESS:   append(Route(nil), c.Routes.BESS...),
		Diesel: append(Route(nil), c.Routes.Diesel...),
	}
	return out
}

// TruckLeg computes TruckLeg with the default constants.
func TruckLeg(milesRoundTrip, cargoTons, trips float64) Record {
	return Default().TruckLeg(milesRoundTrip, cargoTons, trips)
}

// TankerLeg computes TankerLeg with the default constants.
func TankerLeg(milesOneWay, cargoTons, tankers float64) Record {
	return Default().TankerLeg(milesOneWay, cargoTons, tankers)
}

// FuelProduction computes FuelProduction with the default constants.
func FuelProduction(tankerMiles, truckMiles float64) Record {
	return Default().FuelProduction(tankerMiles, truckMiles)
}

// DieselProduction computes DieselProduction with the default constants.
func DieselProduction(gallons float64) Record {
	return Default().DieselProduction(gallons)
}

// EmbodiedRenewable computes EmbodiedRenewable with the default constants.
func EmbodiedRenewable(solarKWp, windKW, bessKWh, dieselGallons float64) EmbodiedMix {
	return Default().EmbodiedRenewable(solarKWp, windKW, bessKWh, dieselGallons)
}

// CO2Equivalent computes CO2Equivalent with the default GWP factors.
func CO2Equivalent(r Record) (float64, error) {
	return Default().CO2Equivalent(r)
}

// ScenarioTransport computes ScenarioTransport with the default constants.
func ScenarioTransport(in ScenarioInput) (TransportBreakdown, error) {
	return Default().ScenarioTransport(in)
}
