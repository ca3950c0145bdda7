package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(90.01, 0))
	assert.False(t, ValidCoordinates(-91, 0))
	assert.False(t, ValidCoordinates(0, 180.5))
	assert.False(t, ValidCoordinates(0, -181))
}

func TestDistance_KnownValues(t *testing.T) {
	// One degree of longitude on the equator.
	d := Distance(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.05)

	// One degree of latitude anywhere.
	d = Distance(45, 10, 46, 10)
	assert.InDelta(t, 111.19, d, 0.05)

	// Same point.
	assert.InDelta(t, 0.0, Distance(12.3, 45.6, 12.3, 45.6), 1e-9)

	// Symmetry.
	assert.InDelta(t, Distance(51.5, -0.1, 48.9, 2.4), Distance(48.9, 2.4, 51.5, -0.1), 1e-9)
}

func TestBearing_CardinalDirections(t *testing.T) {
	assert.InDelta(t, 0.0, Bearing(0, 0, 1, 0), 1e-6, "due north")
	assert.InDelta(t, 90.0, Bearing(0, 0, 0, 1), 1e-6, "due east")
	assert.InDelta(t, 180.0, Bearing(1, 0, 0, 0), 1e-6, "due south")
	assert.InDelta(t, 270.0, Bearing(0, 1, 0, 0), 1e-6, "due west")
}

func TestDestination_RoundTrip(t *testing.T) {
	lat, lon := Destination(10, 20, 45, 100)

	require.True(t, ValidCoordinates(lat, lon))
	assert.InDelta(t, 100.0, Distance(10, 20, lat, lon), 1e-6, "distance to destination")
	assert.InDelta(t, 45.0, Bearing(10, 20, lat, lon), 0.5, "bearing to destination")
}

func TestDestination_NormalizesLongitude(t *testing.T) {
	// Travel east across the antimeridian.
	_, lon := Destination(0, 179.5, 90, 200)
	assert.True(t, lon >= -180 && lon <= 180, "longitude %v not normalized", lon)
	assert.Less(t, lon, 0.0, "should have wrapped to the western hemisphere")
}

func TestBoundsAround(t *testing.T) {
	b := BoundsAround(10, 20, 111)

	assert.InDelta(t, 9.0, b.Min.Y, 1e-9)
	assert.InDelta(t, 11.0, b.Max.Y, 1e-9)
	// Longitude span is wider than latitude span away from the equator.
	assert.Greater(t, b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
	assert.InDelta(t, 20.0, (b.Min.X+b.Max.X)/2, 1e-9, "centered on the input longitude")
}

func TestBoundsAround_ClampsAtEdges(t *testing.T) {
	b := BoundsAround(89.5, 0, 500)
	assert.Equal(t, 90.0, b.Max.Y, "latitude clamps at the pole")
	assert.Equal(t, -180.0, b.Min.X)
	assert.Equal(t, 180.0, b.Max.X)
}

func TestToPixel(t *testing.T) {
	b := BoundsAround(0, 0, 111) // roughly [-1,1] x [-1,1]

	x, y, ok := ToPixel(0, 0, b, 100, 100)
	require.True(t, ok)
	assert.Equal(t, 50, x)
	assert.Equal(t, 50, y)

	// North edge maps to the top row.
	_, y, ok = ToPixel(b.Max.Y, 0, b, 100, 100)
	require.True(t, ok)
	assert.Equal(t, 0, y)

	// Outside the bounds.
	_, _, ok = ToPixel(5, 5, b, 100, 100)
	assert.False(t, ok)
}
