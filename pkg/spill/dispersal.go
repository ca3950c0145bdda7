package spill

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tidemark/spillcast/pkg/mathutil"
	"github.com/tidemark/spillcast/pkg/units"
)

// Reference sea-state conditions. NewSpill starts from these; callers
// override the fields they know.
const (
	DefaultElapsedHours = 24.0
	DefaultWindSpeedKmh = 10.0
	DefaultWaterTempC   = 15.0
	DefaultWaveHeightM  = 0.5
)

// Physical constants of the weathering and spreading model.
const (
	fayConstant       = 1.45 // empirical spreading constant
	gravity           = 9.81 // m/s²
	seawaterDensity   = 1.03 // g/cm³
	evapDecayPerHour  = 0.05
	maxEvaporationCap = 0.9
	maxDissolved      = 0.2 // dissolution rarely exceeds 20%
	dissolutionRampH  = 48.0
)

// Polygon synthesis constants.
const (
	boundaryVertices = 36
	windBiasDeg      = 45.0 // prevailing drift direction, toward the north-east
	maxWindDeform    = 0.6
	vertexJitter     = 0.1 // ±10% uniform radial jitter
	kmPerDegLat      = 111.0
)

// Spill describes a single release of oil and the sea state it meets.
// Values are frozen at simulator construction; a separate Simulator is
// built for each elapsed-time point of interest.
type Spill struct {
	Volume       units.Barrels
	Oil          OilProperties
	ElapsedHours float64
	WindSpeedKmh float64
	WaterTempC   float64
	WaveHeightM  float64
}

// NewSpill returns a Spill for the given volume and oil under the
// reference sea-state conditions.
func NewSpill(volume units.Barrels, oil OilProperties) Spill {
	return Spill{
		Volume:       volume,
		Oil:          oil,
		ElapsedHours: DefaultElapsedHours,
		WindSpeedKmh: DefaultWindSpeedKmh,
		WaterTempC:   DefaultWaterTempC,
		WaveHeightM:  DefaultWaveHeightM,
	}
}

func (s Spill) validate() error {
	var errs []error
	if !(s.Volume > 0) || math.IsInf(float64(s.Volume), 0) {
		errs = append(errs, fmt.Errorf("volume must be a positive number of barrels, got %v", float64(s.Volume)))
	}
	if !(s.ElapsedHours > 0) || math.IsInf(s.ElapsedHours, 0) {
		errs = append(errs, fmt.Errorf("elapsed hours must be positive, got %v", s.ElapsedHours))
	}
	if s.WindSpeedKmh < 0 || math.IsNaN(s.WindSpeedKmh) || math.IsInf(s.WindSpeedKmh, 0) {
		errs = append(errs, fmt.Errorf("wind speed must be non-negative, got %v", s.WindSpeedKmh))
	}
	if s.WaveHeightM < 0 || math.IsNaN(s.WaveHeightM) || math.IsInf(s.WaveHeightM, 0) {
		errs = append(errs, fmt.Errorf("wave height must be non-negative, got %v", s.WaveHeightM))
	}
	if math.IsNaN(s.WaterTempC) || math.IsInf(s.WaterTempC, 0) {
		errs = append(errs, fmt.Errorf("water temperature must be finite, got %v", s.WaterTempC))
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(ErrInvalidSpill, errors.Join(errs...))
}

// Fractions is the mass balance of the spilled oil. Surface is always
// derived as 1 - Evaporated - Dissolved.
type Fractions struct {
	Evaporated float64 `json:"evaporated"`
	Dissolved  float64 `json:"dissolved"`
	Surface    float64 `json:"surface"`
}

// DispersalResult describes the slick at the simulated elapsed time.
type DispersalResult struct {
	// AreaKm2 is the affected water surface area from the spreading
	// equation. The boundary polygon approximates this area.
	AreaKm2 float64 `json:"area_km2"`

	// Origin is the spill origin, X = longitude and Y = latitude.
	Origin geom.Point `json:"-"`

	// ThicknessMm is the average slick thickness in millimeters.
	ThicknessMm float64 `json:"thickness_mm"`

	EvaporatedFraction float64 `json:"evaporated"`
	DissolvedFraction  float64 `json:"dissolved"`

	// Boundary is a single closed ring of boundaryVertices vertices plus a
	// repeated closing point, wound counterclockwise from due east.
	Boundary geom.Polygon `json:"-"`
}

// Simulator computes the physical dispersal of one spill at one elapsed
// time. The deterministic quantities (fractions, area, thickness) are
// computed at construction; the randomized boundary polygon is computed
// on the first Dispersal call and cached.
//
// A Simulator is not safe for concurrent use. Independent instances share
// nothing and may be evaluated in parallel.
type Simulator struct {
	spill Spill
	src   rand.Source

	fractions   Fractions
	areaKm2     float64
	thicknessMm float64

	result *DispersalResult
}

// NewSimulator validates the spill, fills unset oil properties with the
// DefaultOil values, and computes the weathering state at the spill's
// elapsed time. src drives the boundary jitter; pass a seeded source for
// reproducible output. A nil src uses a fixed seed, so the zero
// configuration is still deterministic.
func NewSimulator(s Spill, src rand.Source) (*Simulator, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := s.Oil.validate(); err != nil {
		return nil, err
	}
	s.Oil = s.Oil.normalized()

	if src == nil {
		src = rand.NewPCG(1, 1)
	}

	sim := &Simulator{spill: s, src: src}
	sim.fractions = sim.weather()
	sim.areaKm2, sim.thicknessMm = sim.spread()
	return sim, nil
}

// Spill returns the validated, normalized spill this simulator models.
func (s *Simulator) Spill() Spill { return s.spill }

// EvaporatedFraction returns the fraction of the volume lost to the
// atmosphere at the simulated elapsed time.
func (s *Simulator) EvaporatedFraction() float64 { return s.fractions.Evaporated }

// DissolvedFraction returns the fraction of the volume dissolved into the
// water column at the simulated elapsed time.
func (s *Simulator) DissolvedFraction() float64 { return s.fractions.Dissolved }

// VolumeFractions returns the full mass balance. The three fractions sum
// to exactly 1.
func (s *Simulator) VolumeFractions() Fractions { return s.fractions }

// AreaKm2 returns the affected water surface area in square kilometers.
func (s *Simulator) AreaKm2() float64 { return s.areaKm2 }

// SlickThickness returns the average slick thickness in millimeters.
func (s *Simulator) SlickThickness() float64 { return s.thicknessMm }

// Dispersal returns the dispersal state with a boundary polygon around
// the given origin. The first call fixes the origin and draws the vertex
// jitter; subsequent calls return the cached result regardless of the
// arguments. Coordinate validity is the caller's responsibility.
func (s *Simulator) Dispersal(lat, lon float64) DispersalResult {
	if s.result == nil {
		s.result = &DispersalResult{
			AreaKm2:            s.areaKm2,
			Origin:             geom.Point{X: lon, Y: lat},
			ThicknessMm:        s.thicknessMm,
			EvaporatedFraction: s.fractions.Evaporated,
			DissolvedFraction:  s.fractions.Dissolved,
			Boundary:           s.boundary(lat, lon),
		}
	}
	return *s.result
}

// weather computes the evaporated and dissolved fractions.
//
// Evaporation follows E(t) = Emax (1 - e^(-kt)) with a fixed decay
// constant. Emax depends only on the oil's base evaporation rate, at
// 2.5x the rate and never above 90% of the volume; sea conditions enter
// the model through dissolution and spreading instead. Dissolution
// scales with solubility, temperature and wave action, ramps linearly
// over the first 48 hours, and is capped at 20% and at whatever
// evaporation left behind so the mass balance cannot go negative.
func (s *Simulator) weather() Fractions {
	oil := s.spill.Oil
	t := s.spill.ElapsedHours

	maxEvap := math.Min(maxEvaporationCap, 2.5*oil.EvaporationRate)
	evaporated := maxEvap * (1.0 - math.Exp(-evapDecayPerHour*t))
	evaporated = mathutil.Clamp(evaporated, 0, maxEvap)

	tempFactor := 1.0 + (s.spill.WaterTempC-15.0)*0.02
	waveFactor := 1.0 + (s.spill.WaveHeightM-0.5)*0.5
	timeFactor := math.Min(1.0, t/dissolutionRampH)
	dissolved := oil.Solubility * tempFactor * waveFactor * timeFactor
	dissolved = mathutil.Clamp(dissolved, 0, maxDissolved)
	dissolved = math.Min(dissolved, 1.0-evaporated)

	return Fractions{
		Evaporated: evaporated,
		Dissolved:  dissolved,
		Surface:    1.0 - evaporated - dissolved,
	}
}

// spread evaluates the Fay-type spreading equation
//
//	A = k V^(3/4) t^(1/4) (g |Δρ/ρ|)^(1/8) / (ν^(1/4) σ^(1/2))
//
// for the volume still on the surface, scaled up by wind and wave
// spreading factors, and derives the average thickness from it.
func (s *Simulator) spread() (areaKm2, thicknessMm float64) {
	oil := s.spill.Oil
	remainingM3 := float64(s.spill.Volume.M3()) * s.fractions.Surface
	timeSeconds := s.spill.ElapsedHours * 3600

	relDensityDiff := math.Abs((seawaterDensity - oil.Density) / seawaterDensity)
	if relDensityDiff == 0 {
		// neutrally buoyant oil still spreads; keep the term positive
		relDensityDiff = 1e-9
	}

	viscosityPaS := oil.Viscosity * 0.001   // cP to Pa·s
	tensionNm := oil.SurfaceTension * 0.001 // mN/m to N/m
	windFactor := 1.0 + (s.spill.WindSpeedKmh/20.0)*0.5
	waveFactor := 1.0 + s.spill.WaveHeightM*0.3

	areaM2 := fayConstant *
		math.Pow(remainingM3, 0.75) *
		math.Pow(timeSeconds, 0.25) *
		math.Pow(gravity*relDensityDiff, 0.125) /
		(math.Pow(viscosityPaS, 0.25) * math.Sqrt(tensionNm)) *
		windFactor * waveFactor

	return areaM2 / 1e6, mathutil.SafeDiv(remainingM3, areaM2) * 1000
}

// boundary synthesizes the slick outline: a circle of equivalent area,
// stretched toward the prevailing wind direction and compressed away from
// it, with independent uniform jitter per vertex.
func (s *Simulator) boundary(lat, lon float64) geom.Polygon {
	radiusKm := math.Sqrt(s.areaKm2 / math.Pi)
	windDeform := math.Min(maxWindDeform, s.spill.WindSpeedKmh/60.0)
	windBiasRad := windBiasDeg * math.Pi / 180

	jitter := distuv.Uniform{Min: -vertexJitter, Max: vertexJitter, Src: s.src}
	kmPerDegLon := kmPerDegLat * math.Cos(lat*math.Pi/180)

	ring := make([]geom.Point, 0, boundaryVertices+1)
	for i := 0; i < boundaryVertices; i++ {
		angle := 2 * math.Pi * float64(i) / boundaryVertices

		angleDiff := math.Abs(mod2Pi(angle-windBiasRad+math.Pi) - math.Pi)
		stretch := 1.0 + windDeform*math.Cos(angleDiff)

		r := radiusKm * stretch * (1.0 + jitter.Rand())

		ring = append(ring, geom.Point{
			X: lon + r/kmPerDegLon*math.Cos(angle),
			Y: lat + r/kmPerDegLat*math.Sin(angle),
		})
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

// mod2Pi reduces x to [0, 2π).
func mod2Pi(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}
