package report

import (
	"fmt"
	"math"
	"strings"
)

// EquivalencyType is a category of relatable carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one CO2e value.
type EquivalencyOutput struct {
	InputKg     float64             `json:"input_kg"`
	Results     []EquivalencyResult `json:"results"`
	DisplayText string              `json:"display_text"`
	IsEmpty     bool                `json:"is_empty"`
}

// Equivalencies converts a CO2e mass into EPA equivalencies.
//
// The output is empty, without error, below MinEquivalencyThresholdKg.
// Invalid units, negative values and overflow return an empty output and an
// error.
func Equivalencies(value float64, unit string) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(value, unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	homeDays := kg / EPAHomeDayFactor

	for _, v := range []float64{miles, phones, homeDays} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatEquivalencyValue(miles), Label: "miles driven"},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: formatEquivalencyValue(phones),
			Label:          "smartphones charged",
		},
		{Type: EquivalencyHomeDays, Value: homeDays, FormattedValue: formatEquivalencyValue(homeDays), Label: "home-days of electricity"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving %s miles or charging %s smartphones",
			approx(results[0].FormattedValue), approx(results[1].FormattedValue)),
	}, nil
}

// approx marks a formatted value as approximate unless it already is.
func approx(s string) string {
	if strings.HasPrefix(s, "~") {
		return s
	}
	return "~" + s
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
