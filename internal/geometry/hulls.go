package geometry

import (
	"sort"
	"strings"

	"plotpirate/server/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// minHullPoints is the number of distinct locations needed to outline an area.
const minHullPoints = 3

type micromarketGroup struct {
	name   string
	city   string
	points []orb.Point
}

// MicromarketHulls outlines each micromarket with the convex hull of its
// listings. Micromarkets with fewer than three distinct locations, or whose
// locations are collinear, are left out. Features are ordered by micromarket.
func MicromarketHulls(listings []models.Listing) *geojson.FeatureCollection {
	groups := make(map[string]*micromarketGroup)
	for _, l := range listings {
		key := strings.ToLower(l.City) + "/" + strings.ToLower(l.Micromarket)
		g, ok := groups[key]
		if !ok {
			g = &micromarketGroup{name: l.Micromarket, city: l.City}
			groups[key] = g
		}
		g.points = append(g.points, Point(l.Latitude, l.Longitude))
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fc := geojson.NewFeatureCollection()
	for _, key := range keys {
		g := groups[key]
		hull := ConvexHull(g.points)
		if hull == nil {
			continue
		}

		feature := geojson.NewFeature(orb.Polygon{hull})
		feature.Properties = geojson.Properties{
			"micromarket":   g.name,
			"city":          g.city,
			"listing_count": len(g.points),
			"hull_type":     "convex",
		}
		fc.Append(feature)
	}
	return fc
}

// ConvexHull returns the closed counter-clockwise hull ring of the points, or
// nil when they do not span an area.
func ConvexHull(points []orb.Point) orb.Ring {
	pts := uniquePoints(points)
	if len(pts) < minHullPoints {
		return nil
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	// Andrew's monotone chain.
	hull := make([]orb.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// hull is closed: the last point repeats the first.
	if len(hull) < minHullPoints+1 {
		return nil
	}
	return orb.Ring(hull)
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func uniquePoints(points []orb.Point) []orb.Point {
	seen := make(map[orb.Point]bool, len(points))
	out := make([]orb.Point, 0, len(points))
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
