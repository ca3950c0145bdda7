package spill

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOil(t *testing.T) {
	oil := DefaultOil()
	assert.Equal(t, 0.9, oil.Density)
	assert.Equal(t, 50.0, oil.Viscosity)
	assert.Equal(t, 25.0, oil.SurfaceTension)
	assert.Equal(t, 0.3, oil.EvaporationRate)
	assert.Equal(t, 0.01, oil.Solubility)
	assert.Equal(t, 0.8, oil.PersistenceFactor)
	assert.Equal(t, 3.0, oil.CleanupDifficulty)
	assert.Equal(t, 3.0, oil.CO2EmissionFactor)
	assert.Empty(t, oil.EnvironmentalToxicity)

	require.NoError(t, oil.validate())
}

func TestOilValidate_CollectsAllViolations(t *testing.T) {
	bad := OilProperties{
		Density:         -1,
		Viscosity:       math.Inf(1),
		EvaporationRate: math.NaN(),
	}
	err := bad.validate()
	require.ErrorIs(t, err, ErrInvalidOil)
	assert.Contains(t, err.Error(), "density")
	assert.Contains(t, err.Error(), "viscosity")
	assert.Contains(t, err.Error(), "evaporation_rate")
}

func TestOilNormalized(t *testing.T) {
	partial := OilProperties{Name: "slop", Density: 0.97, Viscosity: 1200}
	oil := partial.normalized()

	assert.Equal(t, "slop", oil.Name)
	assert.Equal(t, 0.97, oil.Density, "set fields survive")
	assert.Equal(t, 1200.0, oil.Viscosity)
	assert.Equal(t, 25.0, oil.SurfaceTension, "unset fields take defaults")
	assert.Equal(t, 0.3, oil.EvaporationRate)
	assert.Equal(t, 0.01, oil.Solubility)
	assert.Equal(t, 0.8, oil.PersistenceFactor)
	assert.Equal(t, 3.0, oil.CleanupDifficulty)
	assert.Equal(t, 3.0, oil.CO2EmissionFactor)

	assert.Equal(t, DefaultOil(), OilProperties{}.normalized(), "empty oil normalizes to the default set")
}
