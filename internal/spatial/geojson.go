package spatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// FrameFeatureCollection converts a density frame to a GeoJSON feature collection.
// Each point carries its location and count as properties.
func FrameFeatureCollection(frame *models.DensityFrame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range frame.Points {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.Properties["location"] = p.Location
		f.Properties["count"] = p.Count
		f.Properties["week"] = frame.Week
		fc.Append(f)
	}
	return fc
}
