package models

// ListingType is the kind of project a listing describes.
type ListingType string

const (
	ListingTypeApartment ListingType = "Apartment"
	ListingTypeVilla     ListingType = "Villa"
	ListingTypePlot      ListingType = "Plot"
	ListingTypeRowHouse  ListingType = "Row House"
)

// ListingTypes lists every known listing type.
var ListingTypes = []ListingType{
	ListingTypeApartment,
	ListingTypeVilla,
	ListingTypePlot,
	ListingTypeRowHouse,
}

// Valid reports whether t is one of the known listing types.
func (t ListingType) Valid() bool {
	for _, known := range ListingTypes {
		if t == known {
			return true
		}
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusAvailable ProjectStatus = "available"
	ProjectStatusSoldOut   ProjectStatus = "soldOut"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusAvailable || s == ProjectStatusSoldOut
}

// Listing is one project record of the dataset. Listings are read-only once loaded.
type Listing struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	City            string        `json:"city"`
	Micromarket     string        `json:"micromarket"`
	Type            ListingType   `json:"type"`
	Typologies      []string      `json:"typologies"`
	MinPrice        float64       `json:"minPrice"`
	MaxPrice        float64       `json:"maxPrice"`
	MinSaleableArea float64       `json:"minSaleableArea"`
	MaxSaleableArea float64       `json:"maxSaleableArea"`
	PossessionDate  string        `json:"possessionDate"`
	Propscore       float64       `json:"propscore"`
	Image           string        `json:"image"`
	Alt             string        `json:"alt"`
	ProjectStatus   ProjectStatus `json:"projectStatus"`
	IsWishlisted    *bool         `json:"isWishlisted,omitempty"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
}

// Bounds is an axis-aligned viewport given by its southwest and northeast corners.
type Bounds struct {
	SwLat float64 `json:"swLat"`
	SwLng float64 `json:"swLng"`
	NeLat float64 `json:"neLat"`
	NeLng float64 `json:"neLng"`
}

// FilterCriteria holds the optional constraints of a search. A nil field
// places no constraint on its dimension.
type FilterCriteria struct {
	City        *string
	Micromarket *string
	Type        *string
	Name        *string
	MinPrice    *float64
	MaxPrice    *float64
	Bounds      *Bounds
}

type SearchResult struct {
	Listings      []Listing `json:"listings"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	TotalListings int       `json:"totalListings"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets groups the aggregate values a filter form is built from.
type Facets struct {
	Types        []string   `json:"types"`
	Micromarkets []string   `json:"micromarkets"`
	Cities       []string   `json:"cities"`
	PriceRange   PriceRange `json:"priceRange"`
	TotalCount   int        `json:"totalCount"`
}
