package spatial

import (
	"github.com/paulmach/orb"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the arithmetic mean of latitude and longitude.
// Returns the zero Point for an empty set.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points.
// Returns the zero Bounds for an empty set.
func BoundingBox(points []Point) models.Bounds {
	if len(points) == 0 {
		return models.Bounds{}
	}

	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.Lon, p.Lat}
	}
	b := mp.Bound()

	return models.Bounds{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
	}
}

// FramePoints extracts the coordinates of a density frame
func FramePoints(frame *models.DensityFrame) []Point {
	points := make([]Point, len(frame.Points))
	for i, p := range frame.Points {
		points[i] = Point{Lat: p.Lat, Lon: p.Lng}
	}
	return points
}
