package dataset

import (
	"errors"
	"fmt"

	"plotpirate/server/internal/models"
)

var (
	ErrDuplicateID  = errors.New("duplicate listing id")
	ErrInvalidRange = errors.New("invalid range")
	ErrUnknownType  = errors.New("unknown listing type")
)

// Validate checks the invariants the search service relies on: unique ids,
// minPrice <= maxPrice, minSaleableArea <= maxSaleableArea and a known
// listing type. All violations are reported together.
func Validate(listings []models.Listing) error {
	var errs []error
	seen := make(map[int64]bool, len(listings))

	for i, l := range listings {
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("listing %d (index %d): %w", l.ID, i, ErrDuplicateID))
		}
		seen[l.ID] = true

		if l.MinPrice > l.MaxPrice {
			errs = append(errs, fmt.Errorf("listing %d: minPrice %.0f > maxPrice %.0f: %w",
				l.ID, l.MinPrice, l.MaxPrice, ErrInvalidRange))
		}
		if l.MinSaleableArea > l.MaxSaleableArea {
			errs = append(errs, fmt.Errorf("listing %d: minSaleableArea %.0f > maxSaleableArea %.0f: %w",
				l.ID, l.MinSaleableArea, l.MaxSaleableArea, ErrInvalidRange))
		}
		if !l.Type.Valid() {
			errs = append(errs, fmt.Errorf("listing %d: %q: %w", l.ID, l.Type, ErrUnknownType))
		}
	}

	return errors.Join(errs...)
}
