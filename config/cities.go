package config

import "strings"

// City holds the map settings for a city
type City struct {
	Name      string    `json:"name" yaml:"name"`
	Center    []float64 `json:"center" yaml:"center"`
	ZoomLevel int       `json:"zoom_level" yaml:"zoom_level"`
}

// SupportedCities is a list of cities supported by the application
var SupportedCities = []City{
	{
		Name:      "bengaluru",
		Center:    []float64{12.97, 77.59},
		ZoomLevel: 12,
	},
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name, ignoring case
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if strings.EqualFold(city.Name, name) {
			return &city
		}
	}
	return nil
}

// DefaultCity returns the first supported city
func DefaultCity() City {
	return SupportedCities[0]
}
