package zmanim

import (
	"fmt"
	"math"
)

const (
	// MaxLatitude is the absolute latitude bound in degrees.
	MaxLatitude = 90.0
	// MaxLongitude is the absolute longitude bound in degrees.
	MaxLongitude = 180.0
)

// Coordinate is a point on the globe in decimal degrees.
type Coordinate struct {
	// Latitude is positive north of the equator.
	Latitude float64
	// Longitude is positive east of Greenwich.
	Longitude float64
}

// Valid reports whether both components are finite and within their bounds.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}

	return math.Abs(c.Latitude) <= MaxLatitude && math.Abs(c.Longitude) <= MaxLongitude
}

// String renders the coordinate as "lat,lon" with four decimals.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// NormalizeLongitude wraps any longitude into [-180, 180].
func NormalizeLongitude(lon float64) float64 {
	if lon >= -MaxLongitude && lon <= MaxLongitude {
		return lon
	}

	lon = math.Mod(lon+MaxLongitude, 2*MaxLongitude)
	if lon < 0 {
		lon += 2 * MaxLongitude
	}

	return lon - MaxLongitude
}
