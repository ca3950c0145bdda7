package spill

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tidemark/spillcast/pkg/mathutil"
)

func mustSimulator(t *testing.T, s Spill, seed uint64) *Simulator {
	t.Helper()
	sim, err := NewSimulator(s, rand.NewPCG(seed, seed))
	require.NoError(t, err)
	return sim
}

// expectCO2 recomputes the per-state emission model independently.
func expectCO2(sim *Simulator) float64 {
	fr := sim.VolumeFractions()
	barrels := float64(sim.Spill().Volume)
	f := sim.Spill().Oil.CO2EmissionFactor
	return barrels*fr.Evaporated*f +
		barrels*fr.Dissolved*f*0.5 +
		barrels*fr.Surface*f*0.8 +
		barrels*fr.Surface*0.1
}

// expectCleanup recomputes the cleanup-time factor model with a given
// noise sample.
func expectCleanup(sim *Simulator, sensitivity, noise float64) float64 {
	s := sim.Spill()
	oil := s.Oil
	barrels := float64(s.Volume)

	days := 1.5 * barrels / 1000 *
		mathutil.Clamp(oil.Viscosity/100.0*1.5, 0.5, 3.0) *
		mathutil.Clamp(oil.PersistenceFactor*2.0, 1.0, 2.0) *
		(oil.CleanupDifficulty / 3.0) *
		mathutil.Clamp(0.8+s.WaveHeightM*0.4, 0.8, 2.0) *
		mathutil.Clamp(0.8+s.WindSpeedKmh/20.0*0.5, 0.8, 1.5) *
		mathutil.Clamp(1.5-s.WaterTempC/30.0*0.5, 0.8, 1.5) *
		mathutil.Clamp(0.5+sim.AreaKm2()/100.0*0.5, 1.0, 3.0) *
		mathutil.Clamp(sensitivity, 0.8, 2.0)

	return math.Max(1.0, days*noise)
}

func TestEstimator_CO2_WithLogs(t *testing.T) {
	oils := []OilProperties{
		DefaultOil(),
		{Name: "heavy_fuel", Density: 0.99, Viscosity: 1500, SurfaceTension: 32, EvaporationRate: 0.1, Solubility: 0.002, PersistenceFactor: 0.95, CleanupDifficulty: 4.5, CO2EmissionFactor: 3.5},
		{Name: "gasoline", Density: 0.74, Viscosity: 0.6, SurfaceTension: 20, EvaporationRate: 0.9, Solubility: 0.05, PersistenceFactor: 0.1, CleanupDifficulty: 1.5, CO2EmissionFactor: 2.8},
	}

	t.Logf("# oil          |  co2(t) @1000bbl")
	for i, oil := range oils {
		sim := mustSimulator(t, NewSpill(1000, oil), 1)
		est := NewEstimator(sim)

		require.InDelta(t, expectCO2(sim), est.CO2EmissionsTons(), 1e-6, "co2 mismatch for oil %d", i)
		require.Greater(t, est.CO2EmissionsTons(), 0.0)
		t.Logf("%-14s | %12.2f", est.Summary().OilType, est.CO2EmissionsTons())
	}
}

func TestEstimator_CO2ScalesNearLinearly(t *testing.T) {
	small := NewEstimator(mustSimulator(t, NewSpill(1000, DefaultOil()), 1))
	large := NewEstimator(mustSimulator(t, NewSpill(10000, DefaultOil()), 1))

	ratio := large.CO2EmissionsTons() / small.CO2EmissionsTons()
	assert.Greater(t, ratio, 8.0)
	assert.Less(t, ratio, 12.0)
	t.Logf("10x volume -> %.3fx emissions", ratio)
}

func TestEstimator_CleanupTime_MatchesModel(t *testing.T) {
	sim := mustSimulator(t, NewSpill(100000, DefaultOil()), 5)
	est := NewEstimator(sim, WithNoiseSource(rand.NewPCG(11, 11)))

	// twin source reproduces the single noise draw
	twin := distuv.Normal{Mu: 1.0, Sigma: 0.05, Src: rand.NewPCG(11, 11)}
	want := expectCleanup(sim, 1.0, twin.Rand())

	got := est.CleanupTimeDays()
	require.InDelta(t, want, got, 1e-9)
	require.GreaterOrEqual(t, got, 1.0)

	// memoized: the sampled value is pinned for the estimator's lifetime
	require.Equal(t, got, est.CleanupTimeDays())
}

func TestEstimator_CleanupTimeFloor(t *testing.T) {
	est := NewEstimator(mustSimulator(t, NewSpill(1, DefaultOil()), 2))
	assert.Equal(t, 1.0, est.CleanupTimeDays(), "tiny spills still take a day")
}

func TestEstimator_CleanupTimeUsesSensitivity(t *testing.T) {
	base := NewEstimator(mustSimulator(t, NewSpill(50000, DefaultOil()), 3),
		WithNoiseSource(rand.NewPCG(8, 8)))
	sensitive := NewEstimator(mustSimulator(t, NewSpill(50000, DefaultOil()), 3),
		WithSensitivity(2.0), WithNoiseSource(rand.NewPCG(8, 8)))

	// identical noise draws, so the ratio is the sensitivity factor
	require.InDelta(t, 2.0, sensitive.CleanupTimeDays()/base.CleanupTimeDays(), 1e-9)
}

func TestEstimator_Wildlife_WithLogs(t *testing.T) {
	sim := mustSimulator(t, NewSpill(25000, DefaultOil()), 4)
	est := NewEstimator(sim)
	tables := DefaultTables()
	area := est.SurfaceAreaKm2()

	toxicity := tables.OilToxicity(sim.Spill().Oil)
	volumeFactor := mathutil.Clamp(0.1+math.Log10(25000.0/100)*0.3, 0.1, 1.0)

	t.Logf("# location    | mortality  birds  mammals  fish")
	for _, loc := range tables.LocationTypes() {
		w := est.WildlifeImpact(loc)
		wantName, profile := tables.WildlifeLocation(loc)

		require.Equal(t, wantName, w.LocationType)
		require.Equal(t, profile.WildlifeDensity, w.WildlifeDensity)
		require.Equal(t, profile.WildlifeVulnerability, w.WildlifeVulnerability)
		require.InDelta(t, toxicity, w.OilToxicity, 1e-12)

		wantMortality := profile.WildlifeVulnerability * toxicity * volumeFactor * 0.8 * 0.8
		require.InDelta(t, wantMortality, w.MortalityRate, 1e-12, "mortality at %s", loc)

		exposed := area * profile.WildlifeDensity * profile.WildlifeVulnerability
		require.Equal(t, int64(exposed*100), w.BirdsAffected, "birds at %s", loc)
		require.Equal(t, int64(exposed*5), w.MarineMammalsAffected, "mammals at %s", loc)
		require.Equal(t, int64(exposed*1000*0.5), w.FishAffected, "fish at %s", loc)

		t.Logf("%-13s | %9.4f %6d %8d %5d",
			loc, w.MortalityRate, w.BirdsAffected, w.MarineMammalsAffected, w.FishAffected)
	}
}

func TestEstimator_WildlifeUnknownLocationFallsBack(t *testing.T) {
	est := NewEstimator(mustSimulator(t, NewSpill(1000, DefaultOil()), 1))

	got := est.WildlifeImpact("atlantis")
	want := est.WildlifeImpact("open_ocean")
	assert.Equal(t, want, got)
	assert.Equal(t, "open_ocean", got.LocationType)
}

func TestEstimator_WildlifePortAssessesAsOpenWater(t *testing.T) {
	est := NewEstimator(mustSimulator(t, NewSpill(1000, DefaultOil()), 1))

	got := est.WildlifeImpact("port")
	assert.Equal(t, "open_ocean", got.LocationType, "a port has no wildlife community of its own")
	assert.Equal(t, est.WildlifeImpact("open_ocean"), got)

	// the economic profile still knows the port
	assert.Greater(t, est.EconomicImpact("port").ShippingImpactUSD, int64(0))
}

func TestEstimator_WildlifeToxicityResolution(t *testing.T) {
	labeled := DefaultOil()
	labeled.EnvironmentalToxicity = "Very High"
	est := NewEstimator(mustSimulator(t, NewSpill(1000, labeled), 1))
	assert.Equal(t, 1.0, est.WildlifeImpact("coastal").OilToxicity, "label lookup is case-insensitive")

	odd := DefaultOil()
	odd.EnvironmentalToxicity = "catastrophic"
	est = NewEstimator(mustSimulator(t, NewSpill(1000, odd), 1))
	assert.Equal(t, 0.6, est.WildlifeImpact("coastal").OilToxicity, "unrecognized labels rate as moderate")

	unlabeled := OilProperties{Density: 0.95, Viscosity: 800}
	est = NewEstimator(mustSimulator(t, NewSpill(1000, unlabeled), 1))
	want := mathutil.Clamp((0.95-0.8)*2.0+800.0/1000.0*0.5, 0.3, 1.0)
	assert.InDelta(t, want, est.WildlifeImpact("coastal").OilToxicity, 1e-12)
}

func TestEstimator_Economic_WithLogs(t *testing.T) {
	sim := mustSimulator(t, NewSpill(25000, DefaultOil()), 4)
	est := NewEstimator(sim)
	tables := DefaultTables()
	barrels := 25000.0
	area := est.SurfaceAreaKm2()
	difficulty := sim.Spill().Oil.CleanupDifficulty / 3.0

	sectored := map[string]struct{ tourism, fishery, shipping bool }{
		"open_ocean": {false, false, false},
		"coastal":    {true, true, false},
		"estuary":    {true, true, false},
		"reef":       {true, true, false},
		"wetland":    {false, false, false},
		"river":      {false, true, true},
		"port":       {false, false, true},
	}

	t.Logf("# location    |   cleanup     env  tourism  fishery  shipping |      total  $/bbl")
	for loc, sectors := range sectored {
		e := est.EconomicImpact(loc)
		mult := tables.Locations[loc].EconomicMultiplier

		require.Equal(t, int64(barrels*10000*mult*difficulty), e.CleanupCostUSD, "cleanup cost at %s", loc)
		require.Equal(t, int64(area*500000), e.EnvironmentalDamageUSD, "environmental damage at %s", loc)

		require.Equal(t, sectors.tourism, e.TourismImpactUSD > 0, "tourism gate at %s", loc)
		require.Equal(t, sectors.fishery, e.FisheryImpactUSD > 0, "fishery gate at %s", loc)
		require.Equal(t, sectors.shipping, e.ShippingImpactUSD > 0, "shipping gate at %s", loc)

		sum := e.CleanupCostUSD + e.EnvironmentalDamageUSD + e.TourismImpactUSD + e.FisheryImpactUSD + e.ShippingImpactUSD
		require.Equal(t, sum, e.TotalUSD, "total must reconcile at %s", loc)
		require.Equal(t, int64(float64(e.TotalUSD)/barrels), e.CostPerBarrelUSD, "cost per barrel at %s", loc)

		t.Logf("%-13s | %9d %7d %8d %8d %9d | %10d %6d",
			loc, e.CleanupCostUSD, e.EnvironmentalDamageUSD, e.TourismImpactUSD,
			e.FisheryImpactUSD, e.ShippingImpactUSD, e.TotalUSD, e.CostPerBarrelUSD)
	}
}

func TestEstimator_EconomicSensitivityScalesDamage(t *testing.T) {
	sim := mustSimulator(t, NewSpill(25000, DefaultOil()), 4)
	base := NewEstimator(sim).EconomicImpact("open_ocean")
	doubled := NewEstimator(sim, WithSensitivity(2.0)).EconomicImpact("open_ocean")

	assert.Greater(t, doubled.EnvironmentalDamageUSD, base.EnvironmentalDamageUSD)
	assert.Equal(t, base.CleanupCostUSD, doubled.CleanupCostUSD, "cleanup cost ignores sensitivity")
}

func TestEstimator_CustomTables(t *testing.T) {
	tables := DefaultTables()
	tables.Locations["fjord"] = LocationProfile{
		EconomicMultiplier:    4.0,
		WildlifeDensity:       1.5,
		WildlifeVulnerability: 1.0,
		Fishery:               true,
	}

	est := NewEstimator(mustSimulator(t, NewSpill(1000, DefaultOil()), 1), WithTables(tables))
	w := est.WildlifeImpact("fjord")
	assert.Equal(t, "fjord", w.LocationType)
	assert.Equal(t, 1.5, w.WildlifeDensity)

	e := est.EconomicImpact("fjord")
	assert.Equal(t, int64(1000*10000*4.0*1.0), e.CleanupCostUSD)
	assert.Positive(t, e.FisheryImpactUSD)
	assert.Zero(t, e.TourismImpactUSD)
}

func TestEstimator_Summary(t *testing.T) {
	sim := mustSimulator(t, NewSpill(2000, DefaultOil()), 6)
	est := NewEstimator(sim, WithSensitivity(1.4))

	sum := est.Summary()
	assert.Equal(t, 2000.0, sum.VolumeBarrels)
	assert.InDelta(t, 2000*0.159, sum.VolumeM3, 1e-12)
	assert.Equal(t, sim.AreaKm2(), sum.SurfaceAreaKm2)
	assert.Equal(t, sim.VolumeFractions(), sum.OilFractions)
	assert.Equal(t, sim.SlickThickness(), sum.SlickThicknessMm)
	assert.Equal(t, "Unknown", sum.OilType, "default oil carries no name")
	assert.Equal(t, 1.4, sum.EnvironmentalSensitivity)
	assert.GreaterOrEqual(t, sum.CleanupTimeDays, 1.0)

	// Summary pins the cached values
	assert.Equal(t, sum.CleanupTimeDays, est.CleanupTimeDays())
	assert.Equal(t, sum.CO2EmissionsTons, est.CO2EmissionsTons())
}

func TestEstimator_SummaryDeterminism(t *testing.T) {
	build := func() Summary {
		sim, err := NewSimulator(NewSpill(5000, DefaultOil()), rand.NewPCG(21, 21))
		require.NoError(t, err)
		return NewEstimator(sim, WithNoiseSource(rand.NewPCG(33, 33))).Summary()
	}
	assert.Equal(t, build(), build(), "same seeds must reproduce the summary bit-exactly")
}

func ExampleEstimator() {
	sim, _ := NewSimulator(NewSpill(1000, DefaultOil()), rand.NewPCG(42, 42))
	est := NewEstimator(sim)
	fmt.Printf("co2=%.0f t\n", est.CO2EmissionsTons())
	// Output: co2=2757 t
}
