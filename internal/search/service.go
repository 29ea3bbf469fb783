package search

import (
	"errors"
	"sort"

	"plotpirate/server/internal/dataset"
	"plotpirate/server/internal/models"

	"github.com/sirupsen/logrus"
)

// PageSize is the number of listings per results page.
const PageSize = 10

var ErrListingNotFound = errors.New("listing not found")

// Service answers listing queries against an immutable repository. All
// methods are safe for concurrent use.
type Service struct {
	repo   dataset.Repository
	logger *logrus.Logger

	types        []string
	micromarkets []string
	cities       []string
	priceRange   models.PriceRange
}

func NewService(repo dataset.Repository, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	listings := repo.All()
	s := &Service{
		repo:         repo,
		logger:       logger,
		types:        distinctSorted(listings, func(l models.Listing) string { return string(l.Type) }),
		micromarkets: distinctSorted(listings, func(l models.Listing) string { return l.Micromarket }),
		cities:       distinctSorted(listings, func(l models.Listing) string { return l.City }),
		priceRange:   priceRange(listings),
	}

	logger.WithFields(logrus.Fields{
		"listings":     repo.Len(),
		"types":        len(s.types),
		"micromarkets": len(s.micromarkets),
	}).Info("Search service initialized")

	return s
}

// Search filters the dataset in its original order. With noPagination the
// whole match set is returned as page 1 of 1; otherwise the requested page
// of PageSize listings is returned. Pages past the end are empty but still
// report the full totals. A page below 1 is treated as page 1.
func (s *Service) Search(criteria models.FilterCriteria, page int, noPagination bool) models.SearchResult {
	m := newMatcher(criteria)

	matched := make([]models.Listing, 0)
	for _, l := range s.repo.All() {
		if m.matches(l) {
			matched = append(matched, l)
		}
	}

	if noPagination {
		return models.SearchResult{
			Listings:      matched,
			TotalPages:    1,
			CurrentPage:   1,
			TotalListings: len(matched),
		}
	}

	if page < 1 {
		page = 1
	}
	window, totalPages := paginate(matched, page, PageSize)

	s.logger.WithFields(logrus.Fields{
		"matched": len(matched),
		"page":    page,
		"pages":   totalPages,
	}).Debug("Search completed")

	return models.SearchResult{
		Listings:      window,
		TotalPages:    totalPages,
		CurrentPage:   page,
		TotalListings: len(matched),
	}
}

// paginate returns the page-th window (1-based) of size items and the total
// number of pages.
func paginate(items []models.Listing, page, size int) ([]models.Listing, int) {
	totalPages := (len(items) + size - 1) / size
	if page < 1 || page > totalPages {
		return []models.Listing{}, totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

func (s *Service) TotalCount() int {
	return s.repo.Len()
}

// UniqueListingTypes returns the distinct listing types in ascending order.
func (s *Service) UniqueListingTypes() []string {
	return append([]string(nil), s.types...)
}

// UniqueMicromarkets returns the distinct micromarkets in ascending order.
func (s *Service) UniqueMicromarkets() []string {
	return append([]string(nil), s.micromarkets...)
}

// UniqueCities returns the distinct cities in ascending order.
func (s *Service) UniqueCities() []string {
	return append([]string(nil), s.cities...)
}

// PriceRange returns the lowest minPrice and the highest maxPrice of the
// dataset, or a zero range when the dataset is empty.
func (s *Service) PriceRange() models.PriceRange {
	return s.priceRange
}

func (s *Service) GetByID(id int64) (models.Listing, error) {
	listing, ok := s.repo.ByID(id)
	if !ok {
		return models.Listing{}, ErrListingNotFound
	}
	return listing, nil
}

// Facets returns every aggregate in one value.
func (s *Service) Facets() models.Facets {
	return models.Facets{
		Types:        s.UniqueListingTypes(),
		Micromarkets: s.UniqueMicromarkets(),
		Cities:       s.UniqueCities(),
		PriceRange:   s.PriceRange(),
		TotalCount:   s.TotalCount(),
	}
}

// All returns the full dataset in order.
func (s *Service) All() []models.Listing {
	return s.repo.All()
}

func distinctSorted(listings []models.Listing, field func(models.Listing) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, l := range listings {
		v := field(l)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func priceRange(listings []models.Listing) models.PriceRange {
	if len(listings) == 0 {
		return models.PriceRange{}
	}

	r := models.PriceRange{Min: listings[0].MinPrice, Max: listings[0].MaxPrice}
	for _, l := range listings[1:] {
		if l.MinPrice < r.Min {
			r.Min = l.MinPrice
		}
		if l.MaxPrice > r.Max {
			r.Max = l.MaxPrice
		}
	}
	return r
}
