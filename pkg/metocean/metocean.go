// Package metocean supplies the environmental conditions a spill meets:
// wind, water temperature, wave height, and the ecological sensitivity of
// the location. Providers answer point queries; the Static provider
// carries operator-supplied values and Climatology synthesizes a crude
// latitude/season estimate when no measurements are available.
package metocean

import (
	"fmt"

	"github.com/tidemark/spillcast/pkg/geo"
)

// Conditions is the sea state and location profile at a point.
type Conditions struct {
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	WaterTempC   float64 `json:"water_temp_c"`
	WaveHeightM  float64 `json:"wave_height_m"`
	Sensitivity  float64 `json:"environmental_sensitivity"`
	LocationType string  `json:"location_type"`
}

// Provider answers environmental condition queries by position.
type Provider interface {
	At(lat, lon float64) (Conditions, error)
}

// Static is a Provider that returns the same conditions everywhere,
// typically assembled from explicit command-line flags.
type Static Conditions

// At returns the fixed conditions after validating the position.
func (s Static) At(lat, lon float64) (Conditions, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return Conditions{}, fmt.Errorf("%w: (%v, %v)", ErrBadCoordinates, lat, lon)
	}
	return Conditions(s), nil
}
