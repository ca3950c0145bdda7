package metocean

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tidemark/spillcast/pkg/geo"
)

// Reference meridians standing in for a coastline database. Positions
// within 5 degrees of longitude of one of these count as coastal.
var coastalMeridians = []float64{-120, -80, 0, 100}

const coastalBandDeg = 5.0

// Climatology is a Provider that synthesizes plausible conditions from
// latitude and season alone: warmer water toward the equator and in the
// local summer, windier and rougher seas toward the poles. It is the
// fallback when no measured conditions are supplied.
//
// The season comes from the injected clock and the wind/wave scatter
// from the injected random source, so tests can freeze both.
type Climatology struct {
	clock clockwork.Clock
	uni   distuv.Uniform
}

// NewClimatology builds a provider on the given clock and random source.
// A nil clock uses real time; a nil source uses a fixed seed.
func NewClimatology(clock clockwork.Clock, src rand.Source) *Climatology {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if src == nil {
		src = rand.NewPCG(1, 1)
	}
	return &Climatology{
		clock: clock,
		uni:   distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// At estimates conditions for the position at the clock's current month.
func (c *Climatology) At(lat, lon float64) (Conditions, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return Conditions{}, fmt.Errorf("%w: (%v, %v)", ErrBadCoordinates, lat, lon)
	}

	month := float64(c.clock.Now().Month())

	// seasonal factor peaks at 1 in the local summer (July north,
	// January south) and falls to 0 in the local winter
	var seasonal float64
	if lat > 0 {
		seasonal = 1 - math.Abs(month-7)/6
	} else {
		seasonal = 1 - math.Abs(math.Mod(month+6, 12)-7)/6
	}

	baseTemp := 30 - math.Abs(lat)*0.5
	windFactor := 0.5 + math.Abs(lat)/90

	conditions := Conditions{
		WaterTempC:   baseTemp + seasonal*10,
		WindSpeedKmh: 10 + 20*windFactor*c.uni.Rand(),
		WaveHeightM:  0.5 + 2*windFactor*c.uni.Rand(),
		Sensitivity:  1.0,
		LocationType: "open_ocean",
	}

	if coastDistanceDeg(lon) < coastalBandDeg {
		conditions.Sensitivity = 2.0
		conditions.LocationType = "coastal"
	}
	return conditions, nil
}

func coastDistanceDeg(lon float64) float64 {
	d := math.Inf(1)
	for _, m := range coastalMeridians {
		d = math.Min(d, math.Abs(lon-m))
	}
	return d
}
