package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	t.Run("additive per pollutant", func(t *testing.T) {
		a := NewRecord(1, 2, 3)
		b := NewRecord(10, 20, 30)
		got := Sum(a, b)
		for _, p := range Pollutants() {
			assert.Equal(t, a[p]+b[p], got[p])
		}
	})

	t.Run("union of keys", func(t *testing.T) {
		a := Record{CO2: 100, "NOx": 50}
		b := Record{CO2: 200, "SOx": 30}
		assert.Equal(t, Record{CO2: 300, "NOx": 50, "SOx": 30}, Sum(a, b))
	})

	t.Run("inputs not mutated", func(t *testing.T) {
		a := NewRecord(1, 1, 1)
		b := NewRecord(2, 2, 2)
		_ = Sum(a, b)
		assert.Equal(t, NewRecord(1, 1, 1), a)
		assert.Equal(t, NewRecord(2, 2, 2), b)
	})

	t.Run("result does not alias single input", func(t *testing.T) {
		a := NewRecord(1, 1, 1)
		got := Sum(a)
		got[CO2] = 99
		assert.Equal(t, 1.0, a[CO2])
	})

	t.Run("no inputs", func(t *testing.T) {
		assert.Empty(t, Sum())
	})
}

func TestCO2Equivalent(t *testing.T) {
	t.Run("reference value", func(t *testing.T) {
		r := NewRecord(233759086.75851363, 1922227.9395642178, 4325.249834421531)
		got, err := CO2Equivalent(r)
		require.NoError(t, err)
		want := 233759086.75851363 + 1922227.9395642178*29.8 + 4325.249834421531*273
		assert.InEpsilon(t, want, got, relTolerance)
		assert.InEpsilon(t, 292222272.5623244, got, relTolerance)
	})

	t.Run("zero record", func(t *testing.T) {
		got, err := CO2Equivalent(NewRecord(0, 0, 0))
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	for _, missing := range Pollutants() {
		t.Run("missing "+string(missing), func(t *testing.T) {
			r := NewRecord(1, 1, 1)
			delete(r, missing)
			_, err := CO2Equivalent(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingPollutant)
			assert.Contains(t, err.Error(), string(missing))
		})
	}

	t.Run("custom GWP table", func(t *testing.T) {
		c := DefaultConstants()
		c.GWP = GWP{CO2: 1, CH4: 28, N2O: 265}
		calc, err := NewCalculator(c)
		require.NoError(t, err)
		got, err := calc.CO2Equivalent(NewRecord(1, 1, 1))
		require.NoError(t, err)
		assert.InDelta(t, 294.0, got, 1e-9)
	})
}

func TestConsolidate(t *testing.T) {
	t.Run("mixed shapes", func(t *testing.T) {
		transport := map[string]Record{"A": NewRecord(10, 1, 0.1)}
		embodied := EmbodiedMix{
			EmbodiedSolar:  ScalarEntry(50),
			EmbodiedDiesel: BreakdownEntry(NewRecord(5, 0.5, 0.05)),
		}

		got, err := Consolidate(transport, embodied)
		require.NoError(t, err)
		assert.InDelta(t, 65.0, got[CO2], 1e-12)
		assert.InDelta(t, 1.5, got[CH4], 1e-12)
		assert.InDelta(t, 0.15, got[N2O], 1e-12)
	})

	t.Run("empty inputs", func(t *testing.T) {
		got, err := Consolidate(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, NewRecord(0, 0, 0), got)
	})

	t.Run("incomplete transport record", func(t *testing.T) {
		_, err := Consolidate(map[string]Record{"A": {CO2: 1, CH4: 1}}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingPollutant)
		assert.Contains(t, err.Error(), `"A"`)
	})

	t.Run("unknown pollutant in embodied breakdown", func(t *testing.T) {
		r := NewRecord(1, 1, 1)
		r["SOx"] = 2
		_, err := Consolidate(nil, EmbodiedMix{EmbodiedDiesel: BreakdownEntry(r)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownPollutant)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		transport := map[string]Record{}
		for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			transport[name] = NewRecord(0.1*float64(i+1), 1e-7*float64(i), 3.3e10/float64(i+1))
		}
		first, err := Consolidate(transport, nil)
		require.NoError(t, err)
		for range 20 {
			again, againErr := Consolidate(transport, nil)
			require.NoError(t, againErr)
			assert.Equal(t, first, again)
		}
	})
}
