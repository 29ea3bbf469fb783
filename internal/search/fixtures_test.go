package search

import (
	"fmt"
	"testing"

	"plotpirate/server/internal/dataset"
	"plotpirate/server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func listing(id int64, name string, listingType models.ListingType, minPrice, maxPrice float64) models.Listing {
	return models.Listing{
		ID:              id,
		Name:            name,
		Slug:            fmt.Sprintf("listing-%d", id),
		City:            "Bengaluru",
		Micromarket:     "Whitefield",
		Type:            listingType,
		Typologies:      []string{"2 BHK"},
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
		MinSaleableArea: 900,
		MaxSaleableArea: 1400,
		ProjectStatus:   models.ProjectStatusAvailable,
		Latitude:        12.95,
		Longitude:       77.60,
	}
}

// villaDataset has 25 listings, 12 of them villas spread through the set.
func villaDataset() []models.Listing {
	listings := make([]models.Listing, 0, 25)
	for i := 0; i < 25; i++ {
		listingType := models.ListingTypeApartment
		if i%2 == 0 && i < 24 {
			listingType = models.ListingTypeVilla
		}
		listings = append(listings, listing(int64(i+1), fmt.Sprintf("Project %02d", i+1), listingType, 5e6, 9e6))
	}
	return listings
}

func newTestService(t *testing.T, listings []models.Listing) *Service {
	t.Helper()
	repo, err := dataset.NewMemoryRepository(listings)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewService(repo, logger)
}

func ptr[T any](v T) *T {
	return &v
}

func ids(listings []models.Listing) []int64 {
	out := make([]int64, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
