package search

import (
	"sync"
	"testing"

	"plotpirate/server/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestService_SearchPaginatesVillas(t *testing.T) {
	svc := newTestService(t, villaDataset())
	criteria := models.FilterCriteria{Type: ptr("Villa")}

	page1 := svc.Search(criteria, 1, false)
	assert.Len(t, page1.Listings, 10)
	assert.Equal(t, 12, page1.TotalListings)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.CurrentPage)

	page2 := svc.Search(criteria, 2, false)
	assert.Len(t, page2.Listings, 2)
	assert.Equal(t, 2, page2.CurrentPage)

	page3 := svc.Search(criteria, 3, false)
	assert.NotNil(t, page3.Listings)
	assert.Empty(t, page3.Listings)
	assert.Equal(t, 2, page3.TotalPages)
	assert.Equal(t, 12, page3.TotalListings)
	assert.Equal(t, 3, page3.CurrentPage)
}

func TestService_PagesConcatenateToFullResult(t *testing.T) {
	svc := newTestService(t, villaDataset())

	for _, criteria := range []models.FilterCriteria{
		{},
		{Type: ptr("villa")},
		{Type: ptr("apartment")},
		{Name: ptr("project 1")},
	} {
		full := svc.Search(criteria, 1, true)

		var paged []models.Listing
		first := svc.Search(criteria, 1, false)
		for page := 1; page <= first.TotalPages; page++ {
			paged = append(paged, svc.Search(criteria, page, false).Listings...)
		}

		if diff := cmp.Diff(ids(full.Listings), ids(paged)); diff != "" {
			t.Errorf("pages differ from unpaginated result (-full +paged):\n%s", diff)
		}
		assert.Equal(t, first.TotalListings, len(full.Listings))
	}
}

func TestService_SearchKeepsDatasetOrder(t *testing.T) {
	listings := []models.Listing{
		listing(30, "Zeta", models.ListingTypeVilla, 1, 2),
		listing(10, "Alpha", models.ListingTypeVilla, 1, 2),
		listing(20, "Mu", models.ListingTypeApartment, 1, 2),
		listing(5, "Beta", models.ListingTypeVilla, 1, 2),
	}
	svc := newTestService(t, listings)

	result := svc.Search(models.FilterCriteria{Type: ptr("Villa")}, 1, false)
	assert.Equal(t, []int64{30, 10, 5}, ids(result.Listings))
}

func TestService_SearchWithoutPagination(t *testing.T) {
	svc := newTestService(t, villaDataset())

	result := svc.Search(models.FilterCriteria{}, 7, true)
	assert.Len(t, result.Listings, 25)
	assert.Equal(t, 25, result.TotalListings)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
}

func TestService_SearchPageBelowOne(t *testing.T) {
	svc := newTestService(t, villaDataset())

	for _, page := range []int{0, -3} {
		result := svc.Search(models.FilterCriteria{}, page, false)
		assert.Equal(t, 1, result.CurrentPage)
		assert.Len(t, result.Listings, 10)
	}
}

func TestService_SearchNoMatches(t *testing.T) {
	svc := newTestService(t, villaDataset())

	result := svc.Search(models.FilterCriteria{MinPrice: ptr(1e9)}, 1, false)
	assert.NotNil(t, result.Listings)
	assert.Empty(t, result.Listings)
	assert.Equal(t, 0, result.TotalListings)
	assert.Equal(t, 0, result.TotalPages)
}

func TestService_Aggregates(t *testing.T) {
	listings := []models.Listing{
		listing(1, "A", models.ListingTypeVilla, 2e7, 4e7),
		listing(2, "B", models.ListingTypeApartment, 5e6, 9e6),
		listing(3, "C", models.ListingTypePlot, 3e6, 6e6),
		listing(4, "D", models.ListingTypeApartment, 7e6, 1.2e7),
	}
	listings[1].Micromarket = "Hebbal"
	listings[2].Micromarket = "Devanahalli"
	listings[3].City = "Mysuru"
	svc := newTestService(t, listings)

	assert.Equal(t, 4, svc.TotalCount())
	assert.Equal(t, []string{"Apartment", "Plot", "Villa"}, svc.UniqueListingTypes())
	assert.Equal(t, []string{"Devanahalli", "Hebbal", "Whitefield"}, svc.UniqueMicromarkets())
	assert.Equal(t, []string{"Bengaluru", "Mysuru"}, svc.UniqueCities())

	priceRange := svc.PriceRange()
	assert.Equal(t, models.PriceRange{Min: 3e6, Max: 4e7}, priceRange)
	for _, l := range listings {
		assert.LessOrEqual(t, priceRange.Min, l.MinPrice)
		assert.GreaterOrEqual(t, priceRange.Max, l.MaxPrice)
	}

	facets := svc.Facets()
	assert.Equal(t, 4, facets.TotalCount)
	assert.Equal(t, priceRange, facets.PriceRange)
	assert.Equal(t, svc.UniqueListingTypes(), facets.Types)
}

func TestService_AggregatesAreCopies(t *testing.T) {
	svc := newTestService(t, villaDataset())

	types := svc.UniqueListingTypes()
	types[0] = "changed"
	assert.NotEqual(t, "changed", svc.UniqueListingTypes()[0])
}

func TestService_EmptyDataset(t *testing.T) {
	svc := newTestService(t, nil)

	assert.Equal(t, 0, svc.TotalCount())
	assert.Equal(t, models.PriceRange{}, svc.PriceRange())
	assert.Empty(t, svc.UniqueListingTypes())

	result := svc.Search(models.FilterCriteria{}, 1, false)
	assert.Empty(t, result.Listings)
	assert.Equal(t, 0, result.TotalPages)
}

func TestService_GetByID(t *testing.T) {
	svc := newTestService(t, villaDataset())

	l, err := svc.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Project 07", l.Name)

	_, err = svc.GetByID(999)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestService_ConcurrentSearches(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := newTestService(t, villaDataset())
	want := svc.Search(models.FilterCriteria{Type: ptr("villa")}, 2, false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.Search(models.FilterCriteria{Type: ptr("villa")}, 2, false)
			assert.Equal(t, ids(want.Listings), ids(got.Listings))
		}()
	}
	wg.Wait()
}
