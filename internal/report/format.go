package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, decPart, hasDec := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	grouped := FormatNumber(n)
	if intPart == "-0" {
		grouped = "-0"
	}
	if !hasDec {
		return grouped
	}
	return grouped + "." + decPart
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above BillionThreshold use "~X.X billion", values at or above
// LargeNumberThreshold use "~X.X million", anything smaller is a rounded,
// comma-separated integer.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// FormatMass renders grams in the largest unit (t, kg, g) that keeps the
// value at or above one.
func FormatMass(grams float64) string {
	abs := math.Abs(grams)
	switch {
	case abs >= TonsToKg/GramsToKg:
		return FormatFloat(grams*GramsToKg/TonsToKg, 2) + " t"
	case abs >= 1/GramsToKg:
		return FormatFloat(grams*GramsToKg, 2) + " kg"
	default:
		return FormatFloat(grams, 2) + " g"
	}
}
