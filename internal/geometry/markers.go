package geometry

import (
	"plotpirate/server/internal/models"

	"github.com/paulmach/orb/geojson"
)

// MarkerCollection renders listings as GeoJSON point features in the order
// given. The collection bbox covers every marker.
func MarkerCollection(listings []models.Listing) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range listings {
		feature := geojson.NewFeature(Point(l.Latitude, l.Longitude))
		feature.ID = l.ID
		feature.Properties = geojson.Properties{
			"name":          l.Name,
			"slug":          l.Slug,
			"city":          l.City,
			"micromarket":   l.Micromarket,
			"type":          string(l.Type),
			"typologies":    l.Typologies,
			"minPrice":      l.MinPrice,
			"maxPrice":      l.MaxPrice,
			"propscore":     l.Propscore,
			"image":         l.Image,
			"alt":           l.Alt,
			"projectStatus": string(l.ProjectStatus),
		}
		fc.Append(feature)
	}

	if bound, ok := ListingsBound(listings); ok {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}
