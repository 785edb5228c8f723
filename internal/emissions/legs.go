package emissions

// TruckLeg returns the combustion emissions of trips round trips by diesel
// truck, each hauling cargoTons out and returning empty.
//
// The loaded direction burns BtuPerTonMile x cargo Btu per mile; the empty
// return burns a flat EmptyBtuPerMile. Both rates are converted to gallons of
// diesel, then to mmBtu, and multiplied by the combustion factors. trips may be
// fractional when it is derived from a capacity ratio.
//
// Inputs are not validated: non-positive inputs give proportionally zero or
// negative results.
func (calc *Calculator) TruckLeg(milesRoundTrip, cargoTons, trips float64) Record {
	t := calc.c.Truck
	btuPerGallon := calc.c.Fuel.DieselBtuPerGallon

	loadedGallonsPerMile := t.BtuPerTonMile * cargoTons / btuPerGallon
	emptyGallonsPerMile := t.EmptyBtuPerMile / btuPerGallon

	return twoPhase(t.Combustion, loadedGallonsPerMile, emptyGallonsPerMile, btuPerGallon, milesRoundTrip, trips)
}

// TankerLeg returns the combustion emissions of tankers ocean tankers each
// sailing milesOneWay loaded with cargoTons and back empty.
//
// The backhaul rate comes from the engine rather than the cargo:
// BtuPerHPHour x Horsepower x BackhaulLoadFactor / AverageSpeedMPH Btu per mile.
func (calc *Calculator) TankerLeg(milesOneWay, cargoTons, tankers float64) Record {
	t := calc.c.Tanker
	btuPerGallon := calc.c.Fuel.ResidualOilBtuPerGallon

	loadedBtuPerMile := t.BtuPerTonMile * cargoTons
	backhaulBtuPerMile := (t.BtuPerHPHour * t.Horsepower * t.BackhaulLoadFactor) / t.AverageSpeedMPH

	loadedGallonsPerMile := loadedBtuPerMile / btuPerGallon
	backhaulGallonsPerMile := backhaulBtuPerMile / btuPerGallon

	return twoPhase(t.Combustion, loadedGallonsPerMile, backhaulGallonsPerMile, btuPerGallon, milesOneWay, tankers)
}

// twoPhase applies factors to a loaded and a return fuel rate over miles and
// scales by count.
func twoPhase(factors Factors, loadedGPM, returnGPM, btuPerGallon, miles, count float64) Record {
	out := make(Record, len(Pollutants()))
	for _, p := range Pollutants() {
		f := factors.Get(p)
		loaded := f * loadedGPM * btuPerGallon / BtuPerMMBtu * miles
		back := f * returnGPM * btuPerGallon / BtuPerMMBtu * miles
		out[p] = (loaded + back) * count
	}
	return out
}
