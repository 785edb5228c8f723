package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the aggregators and the scenario composer.
// Compare with errors.Is; returned errors wrap these with context.
var (
	// ErrMissingPollutant indicates a record lacks one of CO2, CH4 or N2O
	// where all three are required.
	ErrMissingPollutant = constError("missing pollutant")

	// ErrUnknownPollutant indicates a record key outside the tracked set.
	ErrUnknownPollutant = constError("unknown pollutant")

	// ErrDegenerateInput indicates a zero divisor such as a zero turbine
	// rating or a zero fuel energy density.
	ErrDegenerateInput = constError("degenerate input")

	// ErrNonFinite indicates a NaN or infinite input or intermediate value.
	ErrNonFinite = constError("non-finite value")
)
