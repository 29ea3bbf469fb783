package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type cityFile struct {
	Cities []City `yaml:"cities"`
}

// LoadCityConfig replaces SupportedCities with the cities listed in the YAML
// file at path. It must be called before the server starts serving.
func LoadCityConfig(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read city config: %w", err)
	}

	cities, err := ParseCities(data)
	if err != nil {
		return err
	}

	SupportedCities = cities
	return nil
}

// ParseCities decodes and checks a YAML city list.
func ParseCities(data []byte) ([]City, error) {
	var file cityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse city config: %w", err)
	}

	if len(file.Cities) == 0 {
		return nil, errors.New("city config lists no cities")
	}
	for _, city := range file.Cities {
		if city.Name == "" {
			return nil, errors.New("city config has a city without a name")
		}
		if len(city.Center) != 2 {
			return nil, fmt.Errorf("city %s: center must be [lat, lng]", city.Name)
		}
		if city.ZoomLevel <= 0 {
			return nil, fmt.Errorf("city %s: zoom_level must be positive", city.Name)
		}
	}
	return file.Cities, nil
}
