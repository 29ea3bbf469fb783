package dataset

import (
	"plotpirate/server/internal/models"
)

// Repository is read-only access to the listing dataset. Implementations
// must return listings in dataset order and never change them after
// construction.
type Repository interface {
	// All returns every listing in dataset order. Callers must not modify
	// the returned slice.
	All() []models.Listing
	ByID(id int64) (models.Listing, bool)
	Len() int
}

// MemoryRepository holds the dataset in a slice with an id index.
type MemoryRepository struct {
	listings []models.Listing
	byID     map[int64]int
}

// NewMemoryRepository validates the listings and takes a private copy of
// them. Typology slices are copied too, so later changes to the input do
// not leak into the repository.
func NewMemoryRepository(listings []models.Listing) (*MemoryRepository, error) {
	if err := Validate(listings); err != nil {
		return nil, err
	}

	copied := make([]models.Listing, len(listings))
	byID := make(map[int64]int, len(listings))
	for i, l := range listings {
		if l.Typologies != nil {
			l.Typologies = append([]string(nil), l.Typologies...)
		}
		copied[i] = l
		byID[l.ID] = i
	}

	return &MemoryRepository{
		listings: copied,
		byID:     byID,
	}, nil
}

func (r *MemoryRepository) All() []models.Listing {
	return r.listings
}

func (r *MemoryRepository) ByID(id int64) (models.Listing, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.Listing{}, false
	}
	return r.listings[i], true
}

func (r *MemoryRepository) Len() int {
	return len(r.listings)
}
