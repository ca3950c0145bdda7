package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark/spillcast/pkg/spill"
)

// sampleDocument runs a small deterministic simulation and assembles the
// full result document the writers consume.
func sampleDocument(t *testing.T) *Document {
	t.Helper()

	oil := spill.DefaultOil()
	oil.Name = "crude"
	sp := spill.NewSpill(1000, oil)

	sim, err := spill.NewSimulator(sp, rand.NewPCG(7, 7))
	require.NoError(t, err)
	res := sim.Dispersal(43.38, 16.45)

	est := spill.NewEstimator(sim,
		spill.WithSensitivity(2.0),
		spill.WithNoiseSource(rand.NewPCG(9, 9)))

	return &Document{
		GeneratedAt: time.Date(2026, time.August, 25, 14, 30, 5, 0, time.UTC),
		Parameters: Parameters{
			VolumeBarrels: 1000,
			OilType:       "crude",
			TimeHours:     sp.ElapsedHours,
			WindSpeedKmh:  sp.WindSpeedKmh,
			WaterTempC:    sp.WaterTempC,
			WaveHeightM:   sp.WaveHeightM,
			Latitude:      43.38,
			Longitude:     16.45,
			LocationType:  "coastal",
			Seed:          7,
		},
		Summary:   est.Summary(),
		Dispersal: res,
		Wildlife:  est.WildlifeImpact("coastal"),
		Economic:  est.EconomicImpact("coastal"),
	}
}

func TestWriteJSON(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var tree map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))

	for _, key := range []string{
		"generated_at", "parameters", "impact_summary",
		"dispersal", "wildlife_impact", "economic_impact",
		"boundary_wkt", "boundary_geojson",
	} {
		assert.Contains(t, tree, key)
	}

	params, ok := tree["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1000.0, params["volume_barrels"])
	assert.Equal(t, "coastal", params["location_type"])

	wkt, ok := tree["boundary_wkt"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(wkt, "POLYGON (("), wkt)

	gj, ok := tree["boundary_geojson"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Polygon", gj["type"])
}

func TestWriteJSON_NoBoundary(t *testing.T) {
	doc := sampleDocument(t)
	doc.Dispersal.Boundary = nil

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var tree map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	assert.NotContains(t, tree, "boundary_wkt")
	assert.NotContains(t, tree, "boundary_geojson")
}

func TestWriteCSV(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Parameter", "Value"}, rows[0])

	got := map[string]string{}
	keys := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		require.Len(t, row, 2)
		got[row[0]] = row[1]
		keys = append(keys, row[0])
	}
	assert.True(t, slices.IsSorted(keys), "rows must be sorted by parameter name")

	assert.Equal(t, "1000", got["parameters_volume_barrels"])
	assert.Equal(t, "coastal", got["parameters_location_type"])
	assert.Contains(t, got, "impact_summary_co2_emissions_tons")
	assert.Contains(t, got, "dispersal_area_km2")
	assert.Contains(t, got, "economic_impact_total_economic_impact_usd")
	assert.True(t, strings.HasPrefix(got["boundary_wkt"], "POLYGON (("))
}

func TestFlatten(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{
			"b": json.Number("1.5"),
			"c": nil,
		},
		"d": true,
		"e": "text",
	}

	out := map[string]string{}
	flatten("", tree, out)

	assert.Equal(t, map[string]string{
		"a_b": "1.5",
		"a_c": "",
		"d":   "true",
		"e":   "text",
	}, out)
}

func TestDefaultPath(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.August, 25, 14, 30, 5, 0, time.UTC))
	assert.Equal(t, "simulation_20260825_143005.json", DefaultPath("simulation", "json", clock))

	name := DefaultPath("impact_map", "html", nil)
	assert.True(t, strings.HasPrefix(name, "impact_map_"))
	assert.True(t, strings.HasSuffix(name, ".html"))
}
