package emissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuelProduction(t *testing.T) {
	got := FuelProduction(6900, 1030)
	assertRecordInEpsilon(t, NewRecord(361506.4818313, 3170.790944111429, 6.552009455714287), got)

	t.Run("sum of tanker and truck parts", func(t *testing.T) {
		tankerOnly := FuelProduction(6900, 0)
		truckOnly := FuelProduction(0, 1030)
		assertRecordInEpsilon(t, Sum(tankerOnly, truckOnly), got)
	})

	t.Run("no miles no fuel", func(t *testing.T) {
		assert.Equal(t, NewRecord(0, 0, 0), FuelProduction(0, 0))
	})
}

func TestDieselProduction(t *testing.T) {
	got := DieselProduction(124000)
	assertRecordInEpsilon(t, NewRecord(219249958.424, 1883595.3772, 4007.3204), got)
}

func TestEmbodiedRenewable(t *testing.T) {
	mix := EmbodiedRenewable(180, 570, 3410, 5600)
	require.Len(t, mix, 4)

	scalars := map[string]float64{
		EmbodiedBESS:  750200000,
		EmbodiedSolar: 198000000,
		EmbodiedWind:  389709000,
	}
	for name, want := range scalars {
		entry, ok := mix[name]
		require.True(t, ok, name)
		assert.Equal(t, EntryScalar, entry.Kind(), name)
		v, isScalar := entry.Scalar()
		require.True(t, isScalar)
		assert.InEpsilon(t, want, v, relTolerance, name)
		_, isBreakdown := entry.Breakdown()
		assert.False(t, isBreakdown)
	}

	diesel := mix[EmbodiedDiesel]
	assert.Equal(t, EntryBreakdown, diesel.Kind())
	r, ok := diesel.Breakdown()
	require.True(t, ok)
	assertRecordInEpsilon(t, NewRecord(9901611.0256, 85065.59768, 180.97576), r)
	assertRecordInEpsilon(t, DieselProduction(5600), r)
}

func TestEmbodiedEntryJSON(t *testing.T) {
	mix := EmbodiedMix{
		EmbodiedSolar:  ScalarEntry(50),
		EmbodiedDiesel: BreakdownEntry(NewRecord(5, 0.5, 0.05)),
	}

	data, err := json.Marshal(mix)
	require.NoError(t, err)
	assert.JSONEq(t, `{"solar":50,"diesel":{"CO2":5,"CH4":0.5,"N2O":0.05}}`, string(data))
}

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "scalar", EntryScalar.String())
	assert.Equal(t, "breakdown", EntryBreakdown.String())
	assert.Equal(t, "EntryKind(7)", EntryKind(7).String())
}
