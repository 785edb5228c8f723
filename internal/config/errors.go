package config

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnsupportedSchema indicates a file whose schema_version is missing,
	// unparseable, or outside the supported range.
	ErrUnsupportedSchema = constError("unsupported schema version")

	// ErrInvalidScenario indicates a scenario or sweep file that parsed but
	// does not describe anything evaluable.
	ErrInvalidScenario = constError("invalid scenario file")

	// ErrInvalidSettings indicates an out-of-range runtime setting.
	ErrInvalidSettings = constError("invalid settings")
)
