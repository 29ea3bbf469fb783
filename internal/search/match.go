package search

import (
	"strings"

	"plotpirate/server/internal/geometry"
	"plotpirate/server/internal/models"

	"github.com/paulmach/orb"
	"golang.org/x/text/cases"
)

// matcher evaluates one FilterCriteria against many listings. Text criteria
// are case-folded once up front. A matcher is not safe for concurrent use.
type matcher struct {
	caser       cases.Caser
	city        *string
	micromarket *string
	listingType *string
	name        *string
	minPrice    *float64
	maxPrice    *float64
	bound       *orb.Bound
}

func newMatcher(c models.FilterCriteria) *matcher {
	m := &matcher{
		caser:    cases.Fold(),
		minPrice: c.MinPrice,
		maxPrice: c.MaxPrice,
	}
	m.city = m.foldPtr(c.City)
	m.micromarket = m.foldPtr(c.Micromarket)
	m.listingType = m.foldPtr(c.Type)
	m.name = m.foldPtr(c.Name)
	if c.Bounds != nil {
		b := geometry.ToBound(*c.Bounds)
		m.bound = &b
	}
	return m
}

func (m *matcher) fold(s string) string {
	return m.caser.String(s)
}

func (m *matcher) foldPtr(s *string) *string {
	if s == nil {
		return nil
	}
	folded := m.fold(*s)
	return &folded
}

// matches reports whether l satisfies every set criterion. Price criteria use
// range overlap: the listing's [minPrice, maxPrice] band only has to touch
// the requested band.
func (m *matcher) matches(l models.Listing) bool {
	if m.city != nil && m.fold(l.City) != *m.city {
		return false
	}
	if m.micromarket != nil && m.fold(l.Micromarket) != *m.micromarket {
		return false
	}
	if m.listingType != nil && m.fold(string(l.Type)) != *m.listingType {
		return false
	}
	if m.minPrice != nil && l.MaxPrice < *m.minPrice {
		return false
	}
	if m.maxPrice != nil && l.MinPrice > *m.maxPrice {
		return false
	}
	if m.name != nil && !strings.Contains(m.fold(l.Name), *m.name) {
		return false
	}
	if m.bound != nil && !geometry.Contains(*m.bound, l.Latitude, l.Longitude) {
		return false
	}
	return true
}

// Matches reports whether a single listing satisfies the criteria.
func Matches(l models.Listing, c models.FilterCriteria) bool {
	return newMatcher(c).matches(l)
}
