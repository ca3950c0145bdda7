package spill

import (
	"slices"
	"strings"

	"github.com/tidemark/spillcast/pkg/mathutil"
)

// LocationProfile bundles everything the estimators need to know about a
// location type: its cost multiplier, baseline wildlife presence, and
// which economic sectors a spill there disrupts. A profile with zero
// wildlife values describes a location with no resident community;
// wildlife assessments there use the open_ocean profile.
type LocationProfile struct {
	EconomicMultiplier    float64
	WildlifeDensity       float64
	WildlifeVulnerability float64
	Tourism               bool
	Fishery               bool
	Shipping              bool
}

// Tables is the injected configuration for impact estimation. A single
// Tables value is the only source of location and toxicity coefficients,
// shared by the wildlife and economic estimates.
type Tables struct {
	Locations map[string]LocationProfile

	// ToxicityLabels maps qualitative ratings to a [0..1] toxicity value.
	ToxicityLabels map[string]float64
}

// DefaultTables returns the reference coefficient set.
func DefaultTables() *Tables {
	return &Tables{
		Locations: map[string]LocationProfile{
			"open_ocean": {EconomicMultiplier: 1.0, WildlifeDensity: 0.2, WildlifeVulnerability: 0.6},
			"coastal":    {EconomicMultiplier: 2.0, WildlifeDensity: 0.8, WildlifeVulnerability: 0.8, Tourism: true, Fishery: true},
			"estuary":    {EconomicMultiplier: 2.5, WildlifeDensity: 1.0, WildlifeVulnerability: 1.0, Tourism: true, Fishery: true},
			"reef":       {EconomicMultiplier: 3.0, WildlifeDensity: 1.2, WildlifeVulnerability: 0.9, Tourism: true, Fishery: true},
			"wetland":    {EconomicMultiplier: 2.5, WildlifeDensity: 1.0, WildlifeVulnerability: 1.0},
			"river":      {EconomicMultiplier: 2.0, WildlifeDensity: 0.7, WildlifeVulnerability: 0.8, Fishery: true, Shipping: true},
			"port":       {EconomicMultiplier: 1.8, Shipping: true},
		},
		ToxicityLabels: map[string]float64{
			"low":       0.3,
			"moderate":  0.6,
			"high":      0.8,
			"very high": 1.0,
		},
	}
}

// Location returns the profile for the named location type together with
// the name it resolved to. Unknown names fall back to open_ocean.
func (t *Tables) Location(name string) (string, LocationProfile) {
	if p, ok := t.Locations[name]; ok {
		return name, p
	}
	return "open_ocean", t.Locations["open_ocean"]
}

// WildlifeLocation resolves the profile used for wildlife assessment.
// Locations without wildlife values of their own, port among the
// defaults, assess and report as open_ocean.
func (t *Tables) WildlifeLocation(name string) (string, LocationProfile) {
	name, p := t.Location(name)
	if p.WildlifeDensity == 0 {
		return t.Location("open_ocean")
	}
	return name, p
}

// LocationTypes returns the known location type names, sorted.
func (t *Tables) LocationTypes() []string {
	names := make([]string, 0, len(t.Locations))
	for name := range t.Locations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OilToxicity resolves the toxicity of an oil in [0..1]. A qualitative
// label takes precedence; unrecognized labels rate as moderate. Without a
// label, toxicity is estimated from density and viscosity.
func (t *Tables) OilToxicity(oil OilProperties) float64 {
	if oil.EnvironmentalToxicity != "" {
		if v, ok := t.ToxicityLabels[strings.ToLower(oil.EnvironmentalToxicity)]; ok {
			return v
		}
		return 0.6
	}
	o := oil.normalized()
	return mathutil.Clamp((o.Density-0.8)*2.0+(o.Viscosity/1000.0)*0.5, 0.3, 1.0)
}
