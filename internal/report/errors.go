package report

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidUnit indicates an unrecognized mass unit.
	ErrInvalidUnit = constError("invalid mass unit")

	// ErrNegativeValue indicates a negative mass.
	ErrNegativeValue = constError("negative mass")

	// ErrCalculationOverflow indicates a NaN or infinite value.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = constError("unknown output format")
)
