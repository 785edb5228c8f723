package emissions

import (
	"fmt"
	"math"
	"sort"
)

// Pollutant identifies one of the tracked greenhouse gases.
type Pollutant string

// Tracked pollutants.
const (
	CO2 Pollutant = "CO2"
	CH4 Pollutant = "CH4"
	N2O Pollutant = "N2O"
)

// Pollutants returns the tracked pollutants in canonical order.
func Pollutants() []Pollutant {
	return []Pollutant{CO2, CH4, N2O}
}

// Valid reports whether p is one of the tracked pollutants.
func (p Pollutant) Valid() bool {
	switch p {
	case CO2, CH4, N2O:
		return true
	default:
		return false
	}
}

// Record maps a pollutant to its emitted mass in grams.
//
// Records returned by the leg calculators always carry all three pollutants.
// Records produced by Sum carry the union of the keys of their inputs.
type Record map[Pollutant]float64

// NewRecord builds a complete record.
func NewRecord(co2, ch4, n2o float64) Record {
	return Record{CO2: co2, CH4: ch4, N2O: n2o}
}

// Clone returns a copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for p, v := range r {
		out[p] = v
	}
	return out
}

// Keys returns the record's pollutants sorted with tracked pollutants first
// in canonical order, then any others alphabetically.
func (r Record) Keys() []Pollutant {
	keys := make([]Pollutant, 0, len(r))
	for p := range r {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Validate checks that r carries exactly the tracked pollutants with finite
// values.
func (r Record) Validate() error {
	for p, v := range r {
		if !p.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownPollutant, p)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrNonFinite, p, v)
		}
	}
	for _, p := range Pollutants() {
		if _, ok := r[p]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPollutant, p)
		}
	}
	return nil
}

func rank(p Pollutant) int {
	switch p {
	case CO2:
		return 0
	case CH4:
		return 1
	case N2O:
		return 2 //nolint:mnd // canonical position
	default:
		return 3 //nolint:mnd // untracked pollutants sort last
	}
}
