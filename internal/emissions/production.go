package emissions

import (
	"encoding/json"
	"fmt"
)

// FuelProduction estimates the upstream emissions of producing the fuel
// burned over tankerMiles by ocean tanker and truckMiles by truck.
//
// Fuel burned is backed out of distance alone: the tanker's miles per gallon
// follow from its engine consumption, efficiency and speed, the truck's is a
// fixed figure. Gallons are converted to mmBtu with each fuel's energy density
// and multiplied by the production (not combustion) factors. The result is the
// residual-oil and diesel contributions summed per pollutant.
func (calc *Calculator) FuelProduction(tankerMiles, truckMiles float64) Record {
	fuel := calc.c.Fuel
	t := calc.c.Tanker

	gallonsPerHourPerHP := t.BtuPerHPHour / (fuel.ResidualOilBtuPerGallon * t.EngineEfficiency)
	tankerMPG := t.AverageSpeedMPH / gallonsPerHourPerHP

	tankerGallons := tankerMiles * (1.0 / tankerMPG)
	truckGallons := truckMiles * (1.0 / calc.c.Truck.MilesPerGallon)

	tankerMMBtu := tankerGallons * fuel.ResidualOilBtuPerGallon / BtuPerMMBtu
	truckMMBtu := truckGallons * fuel.DieselBtuPerGallon / BtuPerMMBtu

	prod := calc.c.Production
	out := make(Record, len(Pollutants()))
	for _, p := range Pollutants() {
		out[p] = tankerMMBtu*prod.ResidualOil.Get(p) + truckMMBtu*prod.Diesel.Get(p)
	}
	return out
}

// DieselProduction returns the upstream emissions of producing gallons of
// diesel.
func (calc *Calculator) DieselProduction(gallons float64) Record {
	mmBtu := gallons * calc.c.Fuel.DieselBtuPerGallon / BtuPerMMBtu

	out := make(Record, len(Pollutants()))
	for _, p := range Pollutants() {
		out[p] = mmBtu * calc.c.Production.Diesel.Get(p)
	}
	return out
}

// Embodied categories.
const (
	EmbodiedBESS   = "bess"
	EmbodiedSolar  = "solar"
	EmbodiedWind   = "wind"
	EmbodiedDiesel = "diesel"
)

// EmbodiedRenewable returns the embodied emissions of manufacturing the
// target solar (kWp), wind (kW) and battery (kWh) capacity, and of producing
// dieselGallons of diesel.
//
// Solar, wind and BESS factors are published as CO2-equivalent only, so those
// entries are scalars. Diesel production is a full gas breakdown.
func (calc *Calculator) EmbodiedRenewable(solarKWp, windKW, bessKWh, dieselGallons float64) EmbodiedMix {
	e := calc.c.Embodied
	return EmbodiedMix{
		EmbodiedBESS:   ScalarEntry(bessKWh * e.BESSPerKWh),
		EmbodiedSolar:  ScalarEntry(solarKWp * e.SolarPerKWp),
		EmbodiedWind:   ScalarEntry(windKW * e.WindPerKW),
		EmbodiedDiesel: BreakdownEntry(calc.DieselProduction(dieselGallons)),
	}
}

// EntryKind tags the shape of an EmbodiedEntry.
type EntryKind int

const (
	// EntryScalar is a pre-aggregated grams CO2e value.
	EntryScalar EntryKind = iota

	// EntryBreakdown is a per-pollutant Record.
	EntryBreakdown
)

// String returns a human-readable representation of the EntryKind.
func (k EntryKind) String() string {
	switch k {
	case EntryScalar:
		return "scalar"
	case EntryBreakdown:
		return "breakdown"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// EmbodiedEntry is either a bare CO2-equivalent mass or a full pollutant
// breakdown. Use Kind to switch on the shape.
type EmbodiedEntry struct {
	kind   EntryKind
	co2e   float64
	record Record
}

// ScalarEntry wraps a mass in grams CO2e.
func ScalarEntry(gramsCO2e float64) EmbodiedEntry {
	return EmbodiedEntry{kind: EntryScalar, co2e: gramsCO2e}
}

// BreakdownEntry wraps a copy of a pollutant record.
func BreakdownEntry(r Record) EmbodiedEntry {
	return EmbodiedEntry{kind: EntryBreakdown, record: r.Clone()}
}

// Kind returns the entry's shape.
func (e EmbodiedEntry) Kind() EntryKind { return e.kind }

// Scalar returns the CO2e mass and true for a scalar entry.
func (e EmbodiedEntry) Scalar() (float64, bool) {
	return e.co2e, e.kind == EntryScalar
}

// Breakdown returns a copy of the record and true for a breakdown entry.
func (e EmbodiedEntry) Breakdown() (Record, bool) {
	if e.kind != EntryBreakdown {
		return nil, false
	}
	return e.record.Clone(), true
}

// MarshalJSON encodes a scalar as a number and a breakdown as an object.
func (e EmbodiedEntry) MarshalJSON() ([]byte, error) {
	if e.kind == EntryBreakdown {
		return json.Marshal(e.record)
	}
	return json.Marshal(e.co2e)
}

// EmbodiedMix maps an embodied category (bess, solar, wind, diesel) to its
// entry.
type EmbodiedMix map[string]EmbodiedEntry
