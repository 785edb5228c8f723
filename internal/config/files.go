// Package config loads scenario and sweep files and the runtime settings of
// the CLI.
//
// Scenario file:
//
//	schema_version: "1.0.0"
//	constants:            # optional, overrides individual defaults
//	  gwp:
//	    ch4: 28
//	scenarios:
//	  - name: baseline
//	    solar_kw: 5000
//	    turbine_power_kw: 100
//	    wind_kw: 20000
//	    bess_power_kw: 500
//	    bess_energy_kwh: 12400
//	    diesel_gallons: 2000
//	    fuel_production:
//	      tanker_miles: 6900
//	      truck_miles: 1030
//
// Sweep file:
//
//	schema_version: "1.0.0"
//	base:
//	  name: grid
//	  turbine_power_kw: 100
//	axes:
//	  solar_kw: [0, 2500, 5000]
//	  wind_kw: [0, 10000]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/scenario"
	"github.com/rshade/southpole/internal/sweep"
)

// SupportedSchema is the constraint a file's schema_version must satisfy.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

// ScenarioFile is a parsed scenario file.
type ScenarioFile struct {
	SchemaVersion string
	Scenarios     []scenario.Input

	// Constants is the default table with the file's overrides applied.
	Constants emissions.Constants
}

// SweepFile is a parsed sweep grid file.
type SweepFile struct {
	SchemaVersion string
	Grid          sweep.Grid
	Constants     emissions.Constants
}

type scenarioDoc struct {
	SchemaVersion string           `yaml:"schema_version"`
	Constants     yaml.Node        `yaml:"constants"`
	Scenarios     []scenario.Input `yaml:"scenarios"`
}

type sweepDoc struct {
	SchemaVersion string               `yaml:"schema_version"`
	Constants     yaml.Node            `yaml:"constants"`
	Base          scenario.Input       `yaml:"base"`
	Axes          map[string][]float64 `yaml:"axes"`
}

// LoadScenarioFile reads and validates a scenario file.
func LoadScenarioFile(path string) (ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScenarioFile{}, fmt.Errorf("reading scenario file: %w", err)
	}
	f, err := ParseScenarioFile(data)
	if err != nil {
		return ScenarioFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseScenarioFile parses scenario file content. Unnamed scenarios are
// named by position; names must be unique.
func ParseScenarioFile(data []byte) (ScenarioFile, error) {
	var doc scenarioDoc
	if err := decodeStrict(data, &doc); err != nil {
		return ScenarioFile{}, err
	}
	constants, err := resolveHeader(doc.SchemaVersion, doc.Constants)
	if err != nil {
		return ScenarioFile{}, err
	}

	if len(doc.Scenarios) == 0 {
		return ScenarioFile{}, fmt.Errorf("%w: no scenarios", ErrInvalidScenario)
	}
	seen := make(map[string]bool, len(doc.Scenarios))
	for i := range doc.Scenarios {
		if doc.Scenarios[i].Name == "" {
			doc.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
		name := doc.Scenarios[i].Name
		if seen[name] {
			return ScenarioFile{}, fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidScenario, name)
		}
		seen[name] = true
	}

	return ScenarioFile{
		SchemaVersion: doc.SchemaVersion,
		Scenarios:     doc.Scenarios,
		Constants:     constants,
	}, nil
}

// LoadSweepFile reads and validates a sweep file.
func LoadSweepFile(path string) (SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepFile{}, fmt.Errorf("reading sweep file: %w", err)
	}
	f, err := ParseSweepFile(data)
	if err != nil {
		return SweepFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseSweepFile parses sweep file content. The grid is expanded once so
// unknown or empty axes are rejected here.
func ParseSweepFile(data []byte) (SweepFile, error) {
	var doc sweepDoc
	if err := decodeStrict(data, &doc); err != nil {
		return SweepFile{}, err
	}
	constants, err := resolveHeader(doc.SchemaVersion, doc.Constants)
	if err != nil {
		return SweepFile{}, err
	}

	if doc.Base.Name == "" {
		doc.Base.Name = "sweep"
	}
	grid := sweep.Grid{Base: doc.Base, Axes: doc.Axes}
	if _, err := grid.Expand(); err != nil {
		return SweepFile{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return SweepFile{
		SchemaVersion: doc.SchemaVersion,
		Grid:          grid,
		Constants:     constants,
	}, nil
}

// resolveHeader checks the schema version and applies constant overrides to
// the default table.
func resolveHeader(version string, overrides yaml.Node) (emissions.Constants, error) {
	if err := CheckSchemaVersion(version); err != nil {
		return emissions.Constants{}, err
	}

	c := emissions.DefaultConstants()
	if overrides.Kind != 0 {
		raw, err := yaml.Marshal(&overrides)
		if err != nil {
			return emissions.Constants{}, fmt.Errorf("parsing constants: %w", err)
		}
		if err := decodeStrict(raw, &c); err != nil {
			return emissions.Constants{}, fmt.Errorf("constants: %w", err)
		}
	}
	if err := c.Validate(); err != nil {
		return emissions.Constants{}, fmt.Errorf("constants: %w", err)
	}
	return c, nil
}

// CheckSchemaVersion validates version against SupportedSchema.
func CheckSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}

// decodeStrict decodes a single YAML document rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}

// WriteConstants writes c as YAML.
func WriteConstants(w io.Writer, c emissions.Constants) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding constants: %w", err)
	}
	return enc.Close()
}
