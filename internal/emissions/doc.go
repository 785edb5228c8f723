// Package emissions models the greenhouse-gas footprint of hauling cargo to
// the South Pole.
//
// Every calculation reduces to the same conversion chain:
//
//	energy intensity (Btu/mile) -> fuel volume (gal/mile) -> energy (mmBtu) -> pollutant mass (g)
//
// applied per vehicle type (ocean tanker, overland truck) and per leg, plus
// the upstream emissions of producing fuel and the embodied emissions of the
// renewable components themselves. Results are Records of grams of CO2, CH4
// and N2O, which can be summed, consolidated and collapsed to a single
// CO2-equivalent value using GWP100 factors.
//
// All functions are pure. A Calculator is immutable once built and safe for
// concurrent use.
package emissions
