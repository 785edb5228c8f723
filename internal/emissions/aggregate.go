package emissions

import (
	"fmt"
	"sort"
)

// Sum adds records pollutant-wise, in argument order. The result carries the
// union of the input keys; a key missing from one input simply contributes
// nothing from it. Inputs are not modified. Sum of no records is empty.
func Sum(records ...Record) Record {
	total := make(Record)
	for _, r := range records {
		for p, v := range r {
			total[p] += v
		}
	}
	return total
}

// CO2Equivalent collapses a complete record into grams CO2e using the
// calculator's GWP100 factors. It returns ErrMissingPollutant when any of
// CO2, CH4 or N2O is absent.
func (calc *Calculator) CO2Equivalent(r Record) (float64, error) {
	gwp := Factors(calc.c.GWP)

	var total float64
	for _, p := range Pollutants() {
		v, ok := r[p]
		if !ok {
			return 0, fmt.Errorf("co2 equivalent: %w: %s", ErrMissingPollutant, p)
		}
		total += v * gwp.Get(p)
	}
	return total, nil
}

// Consolidate folds per-unit transport records and an embodied mix into one
// record.
//
// Every transport record is added pollutant-wise. Embodied breakdown entries
// are added pollutant-wise too; embodied scalar entries are CO2e only and are
// added entirely to CO2. Each record must carry exactly CO2, CH4 and N2O.
// Keys are visited in sorted order so the result is bit-for-bit reproducible.
func Consolidate(transport map[string]Record, embodied EmbodiedMix) (Record, error) {
	total := NewRecord(0, 0, 0)

	for _, name := range sortedKeys(transport) {
		if err := addInto(total, transport[name]); err != nil {
			return nil, fmt.Errorf("consolidate transport %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(embodied) {
		entry := embodied[name]
		switch entry.Kind() {
		case EntryBreakdown:
			r, _ := entry.Breakdown()
			if err := addInto(total, r); err != nil {
				return nil, fmt.Errorf("consolidate embodied %q: %w", name, err)
			}
		case EntryScalar:
			v, _ := entry.Scalar()
			if err := checkFinite(name, v); err != nil {
				return nil, fmt.Errorf("consolidate embodied: %w", err)
			}
			total[CO2] += v
		default:
			return nil, fmt.Errorf("consolidate embodied %q: unexpected entry kind %s", name, entry.Kind())
		}
	}

	return total, nil
}

func addInto(total, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for _, p := range Pollutants() {
		total[p] += r[p]
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
