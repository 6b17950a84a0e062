package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// ValidCoordinate reports whether lat/lon (degrees) lie on the globe
func ValidCoordinate(lat, lon float64) bool {
	if !finite(lat) || !finite(lon) {
		return false
	}
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// ValidLatitude reports whether lat (degrees) is within [-90, 90]
func ValidLatitude(lat float64) bool {
	return ValidCoordinate(lat, 0)
}

// ValidLongitude reports whether lon (degrees) is within [-180, 180]
func ValidLongitude(lon float64) bool {
	return ValidCoordinate(0, lon)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
