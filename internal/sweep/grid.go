package sweep

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/scenario"
)

// ErrUnknownAxis indicates a grid axis that names no scenario field.
var ErrUnknownAxis = errors.New("unknown sweep axis")

// Axis names accepted by a Grid.
const (
	AxisSolarKW        = "solar_kw"
	AxisTurbinePowerKW = "turbine_power_kw"
	AxisWindKW         = "wind_kw"
	AxisBESSPowerKW    = "bess_power_kw"
	AxisBESSEnergyKWh  = "bess_energy_kwh"
	AxisDieselGallons  = "diesel_gallons"
)

//nolint:gochecknoglobals // Static lookup table.
var axisSetters = map[string]func(*emissions.ScenarioInput, float64){
	AxisSolarKW:        func(in *emissions.ScenarioInput, v float64) { in.SolarKW = v },
	AxisTurbinePowerKW: func(in *emissions.ScenarioInput, v float64) { in.TurbinePowerKW = v },
	AxisWindKW:         func(in *emissions.ScenarioInput, v float64) { in.WindKW = v },
	AxisBESSPowerKW:    func(in *emissions.ScenarioInput, v float64) { in.BESSPowerKW = v },
	AxisBESSEnergyKWh:  func(in *emissions.ScenarioInput, v float64) { in.BESSEnergyKWh = v },
	AxisDieselGallons:  func(in *emissions.ScenarioInput, v float64) { in.DieselGallons = v },
}

// Grid is a base scenario and the values each swept field takes.
type Grid struct {
	Base scenario.Input      `yaml:"base"`
	Axes map[string][]float64 `yaml:"axes"`
}

// Expand returns the cartesian product of the axes applied to the base
// scenario. Axes are varied in name order with the last axis changing
// fastest. Each scenario is named after the base and its axis values. With no
// axes the base scenario is returned alone.
func (g Grid) Expand() ([]scenario.Input, error) {
	names := make([]string, 0, len(g.Axes))
	for name := range g.Axes {
		if _, ok := axisSetters[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
		if len(g.Axes[name]) == 0 {
			return nil, fmt.Errorf("sweep axis %q has no values", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := []scenario.Input{g.Base}
	for _, name := range names {
		set := axisSetters[name]
		next := make([]scenario.Input, 0, len(out)*len(g.Axes[name]))
		for _, in := range out {
			for _, v := range g.Axes[name] {
				c := in
				set(&c.Capacities, v)
				next = append(next, c)
			}
		}
		out = next
	}

	if len(names) > 0 {
		for i := range out {
			out[i].Name = pointName(g.Base.Name, names, out[i].Capacities)
		}
	}
	return out, nil
}

func pointName(base string, axes []string, in emissions.ScenarioInput) string {
	values := map[string]float64{
		AxisSolarKW:        in.SolarKW,
		AxisTurbinePowerKW: in.TurbinePowerKW,
		AxisWindKW:         in.WindKW,
		AxisBESSPowerKW:    in.BESSPowerKW,
		AxisBESSEnergyKWh:  in.BESSEnergyKWh,
		AxisDieselGallons:  in.DieselGallons,
	}

	parts := make([]string, len(axes))
	for i, a := range axes {
		parts[i] = a + "=" + strconv.FormatFloat(values[a], 'g', -1, 64)
	}
	return base + "[" + strings.Join(parts, ",") + "]"
}
