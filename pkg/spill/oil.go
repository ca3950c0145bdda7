package spill

import (
	"errors"
	"fmt"
	"math"
)

// OilProperties holds the physico-chemical profile of a spilled oil.
// Units:
//   - Density: g/cm³ (seawater ≈ 1.03)
//   - Viscosity: cP (dynamic)
//   - SurfaceTension: mN/m
//   - EvaporationRate: dimensionless base rate of evaporative loss [0..1]
//   - Solubility: dimensionless base fraction dissolving in water
//   - PersistenceFactor: how long the oil resists weathering [0..1]
//   - CleanupDifficulty: rating on a 1..5 scale, 3 = average
//   - CO2EmissionFactor: metric tons CO2-equivalent per barrel
type OilProperties struct {
	Name              string  `json:"name,omitempty"`
	Density           float64 `json:"density"`
	Viscosity         float64 `json:"viscosity"`
	SurfaceTension    float64 `json:"surface_tension"`
	EvaporationRate   float64 `json:"evaporation_rate"`
	Solubility        float64 `json:"solubility"`
	PersistenceFactor float64 `json:"persistence_factor"`
	CleanupDifficulty float64 `json:"cleanup_difficulty"`
	CO2EmissionFactor float64 `json:"co2_emission_factor"`

	// EnvironmentalToxicity is an optional qualitative rating
	// ("low", "moderate", "high", "very high"). When empty, toxicity is
	// estimated from density and viscosity.
	EnvironmentalToxicity string `json:"environmental_toxicity,omitempty"`
}

// DefaultOil returns the reference property set used to fill in
// zero-valued fields: a medium crude of average difficulty.
func DefaultOil() OilProperties {
	return OilProperties{
		Density:           0.9,  // g/cm³
		Viscosity:         50.0, // cP
		SurfaceTension:    25.0, // mN/m
		EvaporationRate:   0.3,
		Solubility:        0.01,
		PersistenceFactor: 0.8,
		CleanupDifficulty: 3.0,
		CO2EmissionFactor: 3.0, // t/barrel
	}
}

// validate rejects negative or non-finite numeric fields. All violations
// are reported together, joined with ErrInvalidOil.
func (o OilProperties) validate() error {
	var errs []error
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", name, v))
			return
		}
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %v", name, v))
		}
	}
	check("density", o.Density)
	check("viscosity", o.Viscosity)
	check("surface_tension", o.SurfaceTension)
	check("evaporation_rate", o.EvaporationRate)
	check("solubility", o.Solubility)
	check("persistence_factor", o.PersistenceFactor)
	check("cleanup_difficulty", o.CleanupDifficulty)
	check("co2_emission_factor", o.CO2EmissionFactor)

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(ErrInvalidOil, errors.Join(errs...))
}

// normalized returns o with zero-valued numeric fields replaced by the
// DefaultOil values. A zero field is treated as unset, matching the
// behavior of oil databases that omit unknown properties.
func (o OilProperties) normalized() OilProperties {
	def := DefaultOil()
	if o.Density == 0 {
		o.Density = def.Density
	}
	if o.Viscosity == 0 {
		o.Viscosity = def.Viscosity
	}
	if o.SurfaceTension == 0 {
		o.SurfaceTension = def.SurfaceTension
	}
	if o.EvaporationRate == 0 {
		o.EvaporationRate = def.EvaporationRate
	}
	if o.Solubility == 0 {
		o.Solubility = def.Solubility
	}
	if o.PersistenceFactor == 0 {
		o.PersistenceFactor = def.PersistenceFactor
	}
	if o.CleanupDifficulty == 0 {
		o.CleanupDifficulty = def.CleanupDifficulty
	}
	if o.CO2EmissionFactor == 0 {
		o.CO2EmissionFactor = def.CO2EmissionFactor
	}
	return o
}
