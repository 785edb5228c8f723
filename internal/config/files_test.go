package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/southpole/internal/emissions"
)

const scenarioYAML = `schema_version: "1.0.0"
constants:
  gwp:
    ch4: 28
scenarios:
  - name: baseline
    solar_kw: 5000
    turbine_power_kw: 100
    wind_kw: 20000
    bess_power_kw: 500
    bess_energy_kwh: 12400
    diesel_gallons: 2000
    fuel_production:
      tanker_miles: 6900
      truck_miles: 1030
  - solar_kw: 100
`

func TestParseScenarioFile(t *testing.T) {
	f, err := ParseScenarioFile([]byte(scenarioYAML))
	require.NoError(t, err)

	require.Len(t, f.Scenarios, 2)
	base := f.Scenarios[0]
	assert.Equal(t, "baseline", base.Name)
	assert.InDelta(t, 5000.0, base.Capacities.SolarKW, 0)
	assert.InDelta(t, 12400.0, base.Capacities.BESSEnergyKWh, 0)
	require.NotNil(t, base.FuelProduction)
	assert.InDelta(t, 1030.0, base.FuelProduction.TruckMiles, 0)

	assert.Equal(t, "scenario-2", f.Scenarios[1].Name)
	assert.Nil(t, f.Scenarios[1].FuelProduction)

	t.Run("constants override keeps other defaults", func(t *testing.T) {
		def := emissions.DefaultConstants()
		assert.InDelta(t, 28.0, f.Constants.GWP.CH4, 0)
		assert.InDelta(t, def.GWP.N2O, f.Constants.GWP.N2O, 0)
		assert.Equal(t, def.Routes, f.Constants.Routes)
		assert.Equal(t, def.Truck, f.Constants.Truck)
	})
}

func TestParseScenarioFileDefaultsConstants(t *testing.T) {
	f, err := ParseScenarioFile([]byte("schema_version: 1.2.0\nscenarios:\n  - name: a\n"))
	require.NoError(t, err)
	assert.Equal(t, emissions.DefaultConstants(), f.Constants)
}

func TestParseScenarioFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		msg     string
	}{
		{
			name:    "missing schema version",
			yaml:    "scenarios:\n  - name: a\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "future major version",
			yaml:    "schema_version: 2.0.0\nscenarios:\n  - name: a\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "unparseable version",
			yaml:    "schema_version: banana\nscenarios:\n  - name: a\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "no scenarios",
			yaml:    "schema_version: 1.0.0\n",
			wantErr: ErrInvalidScenario,
		},
		{
			name:    "empty document",
			yaml:    "",
			wantErr: ErrInvalidScenario,
		},
		{
			name:    "duplicate names",
			yaml:    "schema_version: 1.0.0\nscenarios:\n  - name: a\n  - name: a\n",
			wantErr: ErrInvalidScenario,
		},
		{
			name: "unknown scenario field",
			yaml: "schema_version: 1.0.0\nscenarios:\n  - name: a\n    solar_mw: 5\n",
			msg:  "solar_mw",
		},
		{
			name: "unknown constants field",
			yaml: "schema_version: 1.0.0\nconstants:\n  gwp:\n    sf6: 1\nscenarios:\n  - name: a\n",
			msg:  "sf6",
		},
		{
			name:    "degenerate constants",
			yaml:    "schema_version: 1.0.0\nconstants:\n  truck:\n    miles_per_gallon: 0\nscenarios:\n  - name: a\n",
			wantErr: emissions.ErrDegenerateInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenarioFile([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))

	f, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Scenarios, 2)

	_, err = LoadScenarioFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("schema_version: 3.0.0\n"), 0o600))
	_, err = LoadScenarioFile(path)
	require.ErrorIs(t, err, ErrUnsupportedSchema)
	assert.Contains(t, err.Error(), path)
}

func TestParseSweepFile(t *testing.T) {
	data := []byte(`schema_version: "1.0.0"
base:
  turbine_power_kw: 100
  bess_energy_kwh: 1240
axes:
  solar_kw: [0, 2500, 5000]
  wind_kw: [0, 10000]
`)
	f, err := ParseSweepFile(data)
	require.NoError(t, err)

	assert.Equal(t, "sweep", f.Grid.Base.Name)
	assert.InDelta(t, 100.0, f.Grid.Base.Capacities.TurbinePowerKW, 0)

	inputs, err := f.Grid.Expand()
	require.NoError(t, err)
	assert.Len(t, inputs, 6)
	assert.Equal(t, emissions.DefaultConstants(), f.Constants)
}

func TestParseSweepFileErrors(t *testing.T) {
	_, err := ParseSweepFile([]byte("schema_version: 1.0.0\naxes:\n  megawatts: [1]\n"))
	require.ErrorIs(t, err, ErrInvalidScenario)
	assert.Contains(t, err.Error(), "megawatts")

	_, err = ParseSweepFile([]byte("schema_version: 1.0.0\naxes:\n  solar_kw: []\n"))
	require.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseSweepFile([]byte("schema_version: 0.9.0\n"))
	require.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestCheckSchemaVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.9.3", true},
		{"1", true},
		{"v1.1.0", true},
		{"0.9.9", false},
		{"2.0.0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckSchemaVersion(tt.version)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedSchema)
			}
		})
	}
}

func TestWriteConstantsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConstants(&buf, emissions.DefaultConstants()))
	assert.Contains(t, buf.String(), "gwp:")
	assert.Contains(t, buf.String(), "mode: tanker")

	var decoded emissions.Constants
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, emissions.DefaultConstants(), decoded)
}

func TestShippedExamplesParse(t *testing.T) {
	f, err := LoadScenarioFile(filepath.Join("..", "..", "examples", "scenarios.yaml"))
	require.NoError(t, err)
	assert.Len(t, f.Scenarios, 2)
	assert.Equal(t, emissions.DefaultConstants(), f.Constants)

	g, err := LoadSweepFile(filepath.Join("..", "..", "examples", "grid.yaml"))
	require.NoError(t, err)
	inputs, err := g.Grid.Expand()
	require.NoError(t, err)
	assert.Len(t, inputs, 16)
}
