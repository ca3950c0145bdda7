package units

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrels_M3(t *testing.T) {
	assert.InDelta(t, 159.0, float64(Barrels(1000).M3()), 1e-9)
	assert.InDelta(t, 0.159, float64(Barrels(1).M3()), 1e-12)
	assert.InDelta(t, 0.0, float64(Barrels(0).M3()), 1e-12)
}

func TestCubicMeters_Barrels_RoundTrip(t *testing.T) {
	for _, v := range []float64{1, 42.5, 1000, 250000} {
		got := Barrels(v).M3().Barrels()
		assert.InDelta(t, v, float64(got), 1e-9, "round trip for %v barrels", v)
	}
}

func TestBarrels_String_Grouping(t *testing.T) {
	cases := []struct {
		in   Barrels
		want string
	}{
		{Barrels(0), "0 bbl"},
		{Barrels(999), "999 bbl"},
		{Barrels(1000), "1,000 bbl"},
		{Barrels(1000.4), "1,000 bbl"}, // rounded down
		{Barrels(1000.6), "1,001 bbl"}, // rounded up
		{Barrels(250000), "250,000 bbl"},
		{Barrels(4900000), "4,900,000 bbl"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%s", i, tc.want), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestCubicMeters_String(t *testing.T) {
	assert.Equal(t, "159.0 m³", Barrels(1000).M3().String())
	assert.Equal(t, "1,590.0 m³", Barrels(10000).M3().String())
	assert.Equal(t, "0.2 m³", CubicMeters(0.159).String())
	assert.Equal(t, "2.0 m³", CubicMeters(1.95).String(), "carry into the whole part")
}

func TestSquareKm_String(t *testing.T) {
	assert.Equal(t, "0.00 km²", SquareKm(0).String())
	assert.Equal(t, "153.42 km²", SquareKm(153.417).String())
	assert.Equal(t, "1,234.50 km²", SquareKm(1234.5).String())
	assert.Equal(t, "3.00 km²", SquareKm(2.999).String(), "carry into the whole part")
}
