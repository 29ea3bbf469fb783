package geometry

import (
	"plotpirate/server/internal/models"

	"github.com/paulmach/orb"
)

// Point converts a latitude/longitude pair into an orb point (lng, lat order).
func Point(lat, lng float64) orb.Point {
	return orb.Point{lng, lat}
}

// ToBound converts viewport corners into an orb bound. Corners are used as
// given; a southwest corner north or east of the northeast corner yields a
// bound that contains nothing.
func ToBound(b models.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.SwLng, b.SwLat},
		Max: orb.Point{b.NeLng, b.NeLat},
	}
}

// FromBound converts an orb bound back into viewport corners.
func FromBound(b orb.Bound) models.Bounds {
	return models.Bounds{
		SwLat: b.Min.Lat(),
		SwLng: b.Min.Lon(),
		NeLat: b.Max.Lat(),
		NeLng: b.Max.Lon(),
	}
}

// Contains reports whether the coordinate lies inside b, edges included.
func Contains(b orb.Bound, lat, lng float64) bool {
	return b.Contains(Point(lat, lng))
}

// ListingsBound returns the smallest bound covering every listing, and false
// when there are no listings.
func ListingsBound(listings []models.Listing) (orb.Bound, bool) {
	if len(listings) == 0 {
		return orb.Bound{}, false
	}

	bound := Point(listings[0].Latitude, listings[0].Longitude).Bound()
	for _, l := range listings[1:] {
		bound = bound.Extend(Point(l.Latitude, l.Longitude))
	}
	return bound, true
}
