package spill

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tidemark/spillcast/pkg/mathutil"
)

// Cost and impact model constants.
const (
	cleanupDaysPerKbbl    = 1.5
	cleanupCostPerBarrel  = 10000  // USD
	envDamagePerKm2       = 500000 // USD
	tourismLossPerKm2     = 100000 // USD
	fisheryLossPerKm2     = 50000  // USD
	shippingDisruptionUSD = 500000
	cleanupOpsCO2PerBbl   = 0.1 // tons per barrel of surface oil
)

// Summary aggregates the headline impact metrics of a spill.
type Summary struct {
	VolumeBarrels            float64   `json:"volume_barrels"`
	VolumeM3                 float64   `json:"volume_m3"`
	SurfaceAreaKm2           float64   `json:"surface_area_km2"`
	CO2EmissionsTons         float64   `json:"co2_emissions_tons"`
	CleanupTimeDays          float64   `json:"cleanup_time_days"`
	OilFractions             Fractions `json:"oil_fractions"`
	SlickThicknessMm         float64   `json:"slick_thickness_mm"`
	OilType                  string    `json:"oil_type"`
	EnvironmentalSensitivity float64   `json:"environmental_sensitivity"`
}

// WildlifeImpact describes expected harm to fauna around the slick.
// Population counts are rough affected-individual estimates, truncated.
type WildlifeImpact struct {
	LocationType            string  `json:"location_type"`
	WildlifeDensity         float64 `json:"wildlife_density"`
	WildlifeVulnerability   float64 `json:"wildlife_vulnerability"`
	OilToxicity             float64 `json:"oil_toxicity"`
	MortalityRate           float64 `json:"mortality_rate"`
	BirdsAffected           int64   `json:"birds_affected"`
	MarineMammalsAffected   int64   `json:"marine_mammals_affected"`
	FishAffected            int64   `json:"fish_affected"`
	LongTermEcosystemImpact float64 `json:"long_term_ecosystem_impact"`
}

// EconomicImpact itemizes spill costs in whole US dollars. Each component
// is truncated independently; TotalUSD is the exact sum of the five
// components, so the parts always reconcile against the total.
type EconomicImpact struct {
	CleanupCostUSD         int64 `json:"cleanup_cost_usd"`
	EnvironmentalDamageUSD int64 `json:"environmental_damage_usd"`
	TourismImpactUSD       int64 `json:"tourism_impact_usd"`
	FisheryImpactUSD       int64 `json:"fishery_impact_usd"`
	ShippingImpactUSD      int64 `json:"shipping_impact_usd"`
	TotalUSD               int64 `json:"total_economic_impact_usd"`
	CostPerBarrelUSD       int64 `json:"cost_per_barrel_usd"`
}

// Estimator derives secondary impact metrics from a simulator's dispersal
// state. CO2 emissions and cleanup time are cached after the first call;
// the cleanup estimate carries sampled noise, so the cache also pins the
// drawn value. Like Simulator, an Estimator is single-caller; independent
// instances may run in parallel.
type Estimator struct {
	sim         *Simulator
	sensitivity float64
	tables      *Tables
	noiseSrc    rand.Source

	co2Tons     *float64
	cleanupDays *float64
}

// EstimatorOption customises Estimator construction.
type EstimatorOption func(*Estimator)

// WithSensitivity sets the environmental sensitivity of the spill
// location (1.0 = average, higher = more sensitive).
func WithSensitivity(s float64) EstimatorOption {
	return func(e *Estimator) { e.sensitivity = s }
}

// WithTables replaces the default coefficient tables.
func WithTables(t *Tables) EstimatorOption {
	return func(e *Estimator) { e.tables = t }
}

// WithNoiseSource sets the random source for the cleanup-time noise term.
// The default shares the simulator's source.
func WithNoiseSource(src rand.Source) EstimatorOption {
	return func(e *Estimator) { e.noiseSrc = src }
}

// NewEstimator wraps an initialized simulator with default sensitivity
// 1.0 and the DefaultTables coefficient set.
func NewEstimator(sim *Simulator, opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		sim:         sim,
		sensitivity: 1.0,
		tables:      DefaultTables(),
		noiseSrc:    sim.src,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sensitivity returns the environmental sensitivity in effect.
func (e *Estimator) Sensitivity() float64 { return e.sensitivity }

// SurfaceAreaKm2 returns the affected water surface area in km².
func (e *Estimator) SurfaceAreaKm2() float64 { return e.sim.AreaKm2() }

// CO2EmissionsTons returns the CO2-equivalent emissions in metric tons.
//
// Evaporated hydrocarbons oxidize in the atmosphere and emit at the
// oil's full emission factor. Dissolved oil keeps part of its carbon in
// the water column (0.5x), surface oil degrades or is burned or recovered
// (0.8x), and cleanup operations add a fixed overhead per surface barrel.
func (e *Estimator) CO2EmissionsTons() float64 {
	if e.co2Tons != nil {
		return *e.co2Tons
	}

	barrels := float64(e.sim.spill.Volume)
	f := e.sim.spill.Oil.CO2EmissionFactor
	fr := e.sim.fractions

	total := barrels*fr.Evaporated*f +
		barrels*fr.Dissolved*f*0.5 +
		barrels*fr.Surface*f*0.8 +
		barrels*fr.Surface*cleanupOpsCO2PerBbl

	e.co2Tons = &total
	return total
}

// CleanupTimeDays estimates the duration of cleanup operations in days,
// never less than one. The estimate is a base rate of 1.5 days per
// thousand barrels scaled by oil, weather, area, and sensitivity factors,
// with 5% Gaussian noise for natural variation.
func (e *Estimator) CleanupTimeDays() float64 {
	if e.cleanupDays != nil {
		return *e.cleanupDays
	}

	oil := e.sim.spill.Oil
	barrels := float64(e.sim.spill.Volume)

	basicTime := cleanupDaysPerKbbl * barrels / 1000

	viscosityFactor := mathutil.Clamp(oil.Viscosity/100.0*1.5, 0.5, 3.0)
	persistenceFactor := mathutil.Clamp(oil.PersistenceFactor*2.0, 1.0, 2.0)
	difficultyFactor := oil.CleanupDifficulty / 3.0

	waveFactor := mathutil.Clamp(0.8+e.sim.spill.WaveHeightM*0.4, 0.8, 2.0)
	windFactor := mathutil.Clamp(0.8+e.sim.spill.WindSpeedKmh/20.0*0.5, 0.8, 1.5)
	tempFactor := mathutil.Clamp(1.5-e.sim.spill.WaterTempC/30.0*0.5, 0.8, 1.5)

	areaFactor := mathutil.Clamp(0.5+e.SurfaceAreaKm2()/100.0*0.5, 1.0, 3.0)
	sensitivityFactor := mathutil.Clamp(e.sensitivity, 0.8, 2.0)

	days := basicTime *
		viscosityFactor *
		persistenceFactor *
		difficultyFactor *
		waveFactor *
		windFactor *
		tempFactor *
		areaFactor *
		sensitivityFactor

	noise := distuv.Normal{Mu: 1.0, Sigma: 0.05, Src: e.noiseSrc}
	days = math.Max(1.0, days*noise.Rand())

	e.cleanupDays = &days
	return days
}

// WildlifeImpact estimates harm to fauna for the given location type.
// Unknown location types and locations without a wildlife community of
// their own are assessed and reported as open ocean.
func (e *Estimator) WildlifeImpact(locationType string) WildlifeImpact {
	name, loc := e.tables.WildlifeLocation(locationType)
	area := e.SurfaceAreaKm2()
	oil := e.sim.spill.Oil

	toxicity := e.tables.OilToxicity(oil)
	volumeFactor := mathutil.Clamp(0.1+math.Log10(float64(e.sim.spill.Volume)/100)*0.3, 0.1, 1.0)
	mortality := loc.WildlifeVulnerability * toxicity * volumeFactor * oil.PersistenceFactor * 0.8

	exposed := area * loc.WildlifeDensity * loc.WildlifeVulnerability

	return WildlifeImpact{
		LocationType:            name,
		WildlifeDensity:         loc.WildlifeDensity,
		WildlifeVulnerability:   loc.WildlifeVulnerability,
		OilToxicity:             toxicity,
		MortalityRate:           mortality,
		BirdsAffected:           int64(exposed * 100),
		MarineMammalsAffected:   int64(exposed * 5),
		FishAffected:            int64(exposed * 1000 * 0.5), // fish can partly avoid the slick
		LongTermEcosystemImpact: oil.PersistenceFactor * toxicity * e.sensitivity,
	}
}

// EconomicImpact estimates spill costs for the given location type.
// Sector losses apply only where the location profile enables them, so an
// open-ocean spill carries no tourism, fishery, or shipping component.
func (e *Estimator) EconomicImpact(locationType string) EconomicImpact {
	_, loc := e.tables.Location(locationType)
	area := e.SurfaceAreaKm2()
	oil := e.sim.spill.Oil
	barrels := float64(e.sim.spill.Volume)

	difficulty := oil.CleanupDifficulty / 3.0

	cleanup := int64(barrels * cleanupCostPerBarrel * loc.EconomicMultiplier * difficulty)
	environmental := int64(area * envDamagePerKm2 * e.sensitivity)

	var tourism, fishery, shipping int64
	if loc.Tourism {
		tourism = int64(area * tourismLossPerKm2 * loc.EconomicMultiplier)
	}
	if loc.Fishery {
		fishery = int64(area * fisheryLossPerKm2 * e.tables.OilToxicity(oil))
	}
	if loc.Shipping {
		shipping = int64(shippingDisruptionUSD * difficulty * loc.EconomicMultiplier)
	}

	total := cleanup + environmental + tourism + fishery + shipping

	return EconomicImpact{
		CleanupCostUSD:         cleanup,
		EnvironmentalDamageUSD: environmental,
		TourismImpactUSD:       tourism,
		FisheryImpactUSD:       fishery,
		ShippingImpactUSD:      shipping,
		TotalUSD:               total,
		CostPerBarrelUSD:       int64(float64(total) / barrels),
	}
}

// Summary computes and collects the headline metrics. Calling Summary
// pins the cached CO2 and cleanup values for the estimator's lifetime.
func (e *Estimator) Summary() Summary {
	oilType := e.sim.spill.Oil.Name
	if oilType == "" {
		oilType = "Unknown"
	}

	return Summary{
		VolumeBarrels:            float64(e.sim.spill.Volume),
		VolumeM3:                 float64(e.sim.spill.Volume.M3()),
		SurfaceAreaKm2:           e.SurfaceAreaKm2(),
		CO2EmissionsTons:         e.CO2EmissionsTons(),
		CleanupTimeDays:          e.CleanupTimeDays(),
		OilFractions:             e.sim.VolumeFractions(),
		SlickThicknessMm:         e.sim.SlickThickness(),
		OilType:                  oilType,
		EnvironmentalSensitivity: e.sensitivity,
	}
}
