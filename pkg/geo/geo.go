// Package geo provides the small set of spherical-earth helpers the
// simulator and its renderers need: coordinate validation, great-circle
// distance and bearing, destination points, and map-friendly bounding
// boxes. All angles are decimal degrees, all distances kilometers.
package geo

import (
	"math"

	"github.com/ctessum/geom"
)

// EarthRadiusKm is the mean Earth radius used by the great-circle formulas.
const EarthRadiusKm = 6371.0

// kmPerDegree approximates one degree of latitude.
const kmPerDegree = 111.0

// ValidCoordinates reports whether lat/lon fall in the valid WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	if lon < -180 || lon > 180 {
		return false
	}
	return true
}

// Distance returns the haversine great-circle distance in kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Bearing returns the initial bearing from point 1 to point 2 in degrees,
// normalized to [0, 360) with 0 = north and 90 = east.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2 - lon1)

	x := math.Sin(dLambda) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	deg := degrees(math.Atan2(x, y))
	return math.Mod(deg+360, 360)
}

// Destination returns the point reached from (lat, lon) after traveling
// distanceKm along the given initial bearing. The returned longitude is
// normalized to [-180, 180).
func Destination(lat, lon, bearingDeg, distanceKm float64) (destLat, destLon float64) {
	phi1 := radians(lat)
	lambda1 := radians(lon)
	theta := radians(bearingDeg)
	delta := distanceKm / EarthRadiusKm

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	destLat = degrees(phi2)
	destLon = math.Mod(degrees(lambda2)+180, 360) - 180
	if destLon < -180 {
		destLon += 360
	}
	return destLat, destLon
}

// BoundsAround returns a lat/lon bounding box covering radiusKm around the
// center, clamped to the valid coordinate ranges. Longitude extent widens
// with latitude; at the poles it degenerates to the full range.
func BoundsAround(lat, lon, radiusKm float64) *geom.Bounds {
	radiusLat := radiusKm / kmPerDegree
	radiusLon := radiusKm / (kmPerDegree * math.Cos(radians(lat)))

	return &geom.Bounds{
		Min: geom.Point{
			X: math.Max(-180, lon-radiusLon),
			Y: math.Max(-90, lat-radiusLat),
		},
		Max: geom.Point{
			X: math.Min(180, lon+radiusLon),
			Y: math.Min(90, lat+radiusLat),
		},
	}
}

// ToPixel projects lat/lon onto a width x height image spanning bounds b,
// with the Y axis flipped so north is up. ok is false when the point lies
// outside the bounds.
func ToPixel(lat, lon float64, b *geom.Bounds, width, height int) (x, y int, ok bool) {
	if lat < b.Min.Y || lat > b.Max.Y || lon < b.Min.X || lon > b.Max.X {
		return 0, 0, false
	}
	xNorm := (lon - b.Min.X) / (b.Max.X - b.Min.X)
	yNorm := 1.0 - (lat-b.Min.Y)/(b.Max.Y-b.Min.Y)
	return int(xNorm * float64(width)), int(yNorm * float64(height)), true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
