package oildb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark/spillcast/pkg/spill"
)

func TestLoadScenarios(t *testing.T) {
	scs, err := LoadScenarios("testdata/spills.csv")
	require.NoError(t, err)
	require.Len(t, scs, 4)

	first := scs[0]
	assert.Equal(t, "adriatic_tanker", first.Name)
	assert.Equal(t, 12000.0, first.VolumeBarrels)
	assert.Equal(t, 43.38, first.Lat)
	assert.Equal(t, 16.45, first.Lon)
	assert.Equal(t, "crude", first.OilType)
	assert.Equal(t, 24.0, first.TimeHours)
	assert.Equal(t, "coastal", first.LocationType)

	// empty condition cells stay zero
	harbor := scs[2]
	assert.Equal(t, "harbor_bunkering", harbor.Name)
	assert.Zero(t, harbor.WindKmh)
	assert.Zero(t, harbor.WaveHeightM)
	assert.Equal(t, "port", harbor.LocationType)
}

func TestScenario_SpillAppliesDefaults(t *testing.T) {
	sc := Scenario{Name: "x", VolumeBarrels: 500, OilType: "crude", TimeHours: 48}
	s := sc.Spill(spill.DefaultOil())

	assert.Equal(t, 500.0, float64(s.Volume))
	assert.Equal(t, 48.0, s.ElapsedHours, "given conditions survive")
	assert.Equal(t, spill.DefaultWindSpeedKmh, s.WindSpeedKmh, "missing conditions take defaults")
	assert.Equal(t, spill.DefaultWaterTempC, s.WaterTempC)
	assert.Equal(t, spill.DefaultWaveHeightM, s.WaveHeightM)
}

func TestReadScenarios_HeaderOrderInsensitive(t *testing.T) {
	csv := "oil_type,name,lon,lat,volume_barrels\ncrude,reordered,4.0,52.0,100\n"
	scs, err := ReadScenarios(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, scs, 1)
	assert.Equal(t, "reordered", scs[0].Name)
	assert.Equal(t, 52.0, scs[0].Lat)
	assert.Equal(t, 4.0, scs[0].Lon)
}

func TestReadScenarios_Errors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		want string
	}{
		{"empty input", "", "empty"},
		{"missing column", "name,volume_barrels,lat,lon\nx,1,2,3\n", `missing column "oil_type"`},
		{"bad number", "name,volume_barrels,lat,lon,oil_type\nx,a lot,2,3,crude\n", `line 2: bad volume_barrels`},
		{"missing name", "name,volume_barrels,lat,lon,oil_type\n,1,2,3,crude\n", "line 2: missing name"},
		{"missing volume", "name,volume_barrels,lat,lon,oil_type\nx,,2,3,crude\n", "line 2: missing volume_barrels"},
		{"bad row on later line", "name,volume_barrels,lat,lon,oil_type\nx,1,2,3,crude\ny,1,2,oops,crude\n", "line 3: bad lon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadScenarios(strings.NewReader(tc.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
