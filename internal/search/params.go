package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"plotpirate/server/internal/models"
)

// Query parameter keys shared by the list and map endpoints.
const (
	ParamCity        = "city"
	ParamMicromarket = "micromarket"
	ParamType        = "type"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamName        = "name"
	ParamPage        = "page"
	ParamSwLat       = "swLat"
	ParamSwLng       = "swLng"
	ParamNeLat       = "neLat"
	ParamNeLng       = "neLng"
)

// Params is a normalized search request.
type Params struct {
	Criteria models.FilterCriteria
	Page     int
}

// ParseParams normalizes raw query values. Only the first value of a key is
// used and empty values count as absent. Numbers that do not parse, or are
// not finite, are dropped. Page must be a whole number and defaults to 1.
// Bounds are set only when all four corners parse.
func ParseParams(values url.Values) Params {
	p := Params{
		Criteria: models.FilterCriteria{
			City:        stringParam(values, ParamCity),
			Micromarket: stringParam(values, ParamMicromarket),
			Type:        stringParam(values, ParamType),
			Name:        stringParam(values, ParamName),
			MinPrice:    floatParam(values, ParamMinPrice),
			MaxPrice:    floatParam(values, ParamMaxPrice),
			Bounds:      boundsParam(values),
		},
		Page: 1,
	}

	if page, ok := pageParam(values); ok {
		p.Page = page
	}
	return p
}

// Encode renders the params back into a canonical query string with sorted
// keys. Page 1 is left out.
func (p Params) Encode() string {
	values := url.Values{}
	setString(values, ParamCity, p.Criteria.City)
	setString(values, ParamMicromarket, p.Criteria.Micromarket)
	setString(values, ParamType, p.Criteria.Type)
	setString(values, ParamName, p.Criteria.Name)
	setFloat(values, ParamMinPrice, p.Criteria.MinPrice)
	setFloat(values, ParamMaxPrice, p.Criteria.MaxPrice)
	if b := p.Criteria.Bounds; b != nil {
		setFloat(values, ParamSwLat, &b.SwLat)
		setFloat(values, ParamSwLng, &b.SwLng)
		setFloat(values, ParamNeLat, &b.NeLat)
		setFloat(values, ParamNeLng, &b.NeLng)
	}
	if p.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(p.Page))
	}
	return values.Encode()
}

func first(values url.Values, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func stringParam(values url.Values, key string) *string {
	v := first(values, key)
	if v == "" {
		return nil
	}
	return &v
}

func floatParam(values url.Values, key string) *float64 {
	v := strings.TrimSpace(first(values, key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// pageParam accepts any finite whole number in int32 range, so "2", "2.0"
// and "2e0" all select page 2.
func pageParam(values url.Values) (int, bool) {
	f := floatParam(values, ParamPage)
	if f == nil || *f != math.Trunc(*f) {
		return 0, false
	}
	if *f > math.MaxInt32 || *f < math.MinInt32 {
		return 0, false
	}
	return int(*f), true
}

func boundsParam(values url.Values) *models.Bounds {
	swLat := floatParam(values, ParamSwLat)
	swLng := floatParam(values, ParamSwLng)
	neLat := floatParam(values, ParamNeLat)
	neLng := floatParam(values, ParamNeLng)
	if swLat == nil || swLng == nil || neLat == nil || neLng == nil {
		return nil
	}
	return &models.Bounds{
		SwLat: *swLat,
		SwLng: *swLng,
		NeLat: *neLat,
		NeLng: *neLng,
	}
}

func setString(values url.Values, key string, v *string) {
	if v != nil {
		values.Set(key, *v)
	}
}

func setFloat(values url.Values, key string, v *float64) {
	if v != nil {
		values.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
