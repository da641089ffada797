package assessment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// cityEntry is one city's market data in the override file.
type cityEntry struct {
	SqmGood   float64 `yaml:"sqm_good"`
	SqmFair   float64 `yaml:"sqm_fair"`
	Composite float64 `yaml:"location_composite"`
}

// LoadCityTable merges a YAML city table into the built-in market data.
// The file maps city names to per-m² price thresholds and an optional
// location composite:
//
//	leipzig:
//	  sqm_good: 2500
//	  sqm_fair: 3500
//	  location_composite: 6.8
//
// Zero-valued fields leave the built-in entry untouched.
//
// The merge mutates the package-level market tables and is not safe to
// run concurrently with scoring. Call it during startup, before any
// requests are served.
func LoadCityTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading city table: %w", err)
	}

	var entries map[string]cityEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing city table: %w", err)
	}

	for city, e := range entries {
		key := strings.ToLower(strings.TrimSpace(city))
		if e.SqmGood > 0 && e.SqmFair > 0 {
			if e.SqmFair < e.SqmGood {
				return fmt.Errorf("city table entry %q: sqm_fair must be >= sqm_good", city)
			}
			citySqmThresholds[key] = sqmThresholds{good: e.SqmGood, fair: e.SqmFair}
		}
		if e.Composite > 0 {
			if e.Composite > 10 {
				return fmt.Errorf("city table entry %q: location_composite must be on the 0-10 scale", city)
			}
			cityComposites[key] = e.Composite
		}
	}
	return nil
}
