package database

import (
	"path/filepath"
	"testing"

	"plotpirate/server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListings() []models.Listing {
	wishlisted := true
	return []models.Listing{
		{
			ID: 42, Name: "Meadow Plots", Slug: "meadow-plots", City: "Bengaluru", Micromarket: "Devanahalli",
			Type: models.ListingTypePlot, Typologies: []string{"Plot"}, MinPrice: 3e6, MaxPrice: 6e6,
			MinSaleableArea: 1200, MaxSaleableArea: 2400, PossessionDate: "2027-03-01", Propscore: 4.2,
			ProjectStatus: models.ProjectStatusAvailable, Latitude: 13.2468, Longitude: 77.712,
		},
		{
			ID: 7, Name: "Palm Grove", Slug: "palm-grove", City: "Bengaluru", Micromarket: "Hebbal",
			Type: models.ListingTypeApartment, Typologies: []string{"2 BHK", "3 BHK"}, MinPrice: 8e6, MaxPrice: 1.4e7,
			MinSaleableArea: 1100, MaxSaleableArea: 1750, PossessionDate: "2026-11-01", Propscore: 3.8,
			ProjectStatus: models.ProjectStatusSoldOut, IsWishlisted: &wishlisted, Latitude: 13.0358, Longitude: 77.597,
		},
	}
}

func TestDatabase_ExportThenReadKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.db")

	db, err := NewDatabase(path, false, nil)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	require.NoError(t, db.ReplaceListings(sampleListings()))
	require.NoError(t, db.Close())

	ro, err := NewDatabase(path, true, nil)
	require.NoError(t, err)
	defer ro.Close()

	listings, err := ro.GetAllListings()
	require.NoError(t, err)
	assert.Equal(t, sampleListings(), listings)
}

func TestDatabase_ReplaceListingsOverwrites(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "listings.db"), false, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.RunMigrations())

	require.NoError(t, db.ReplaceListings(sampleListings()))
	require.NoError(t, db.ReplaceListings(sampleListings()[1:]))

	listings, err := db.GetAllListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, int64(7), listings[0].ID)

	require.NoError(t, db.ReplaceListings(nil))
	listings, err = db.GetAllListings()
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestDatabase_UnmigratedSnapshot(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "empty.db"), false, nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetAllListings()
	assert.ErrorIs(t, err, ErrNoListingsTable)
}
