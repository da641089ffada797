package assessment

import (
	"fmt"
	"strings"
)

// LocationInputs are externally supplied qualitative location scores,
// each on the 0-10 scale the other categories use.
type LocationInputs struct {
	PublicTransport float64
	Amenities       float64
	MarketTrend     float64
	Demographics    float64
}

// cityComposites are fallback composite scores keyed by city, used when no
// qualitative location data was supplied.
var cityComposites = map[string]float64{
	"munich":  8.1,
	"münchen": 8.1,
}

const defaultComposite = 6.0

// ScoreLocation applies fixed weights to the supplied qualitative factors.
// With no inputs it substitutes the city-keyed composite default.
func ScoreLocation(snap Snapshot, inputs *LocationInputs) CategoryScore {
	if inputs == nil {
		composite := defaultComposite
		if c, ok := cityComposites[strings.ToLower(strings.TrimSpace(snap.City))]; ok {
			composite = c
		}
		return combine(CategoryLocation, []ScoreFactor{
			{
				Name:     "City composite",
				RawValue: fmt.Sprintf("%s (default)", snap.City),
				Score:    composite,
				MaxScore: 10,
				Weight:   1.0,
			},
		})
	}

	factors := []ScoreFactor{
		{
			Name:     "Public transport",
			RawValue: fmt.Sprintf("%.1f", inputs.PublicTransport),
			Score:    clampScore(inputs.PublicTransport),
			MaxScore: 10,
			Weight:   0.3,
		},
		{
			Name:     "Amenities",
			RawValue: fmt.Sprintf("%.1f", inputs.Amenities),
			Score:    clampScore(inputs.Amenities),
			MaxScore: 10,
			Weight:   0.3,
		},
		{
			Name:     "Market trend",
			RawValue: fmt.Sprintf("%.1f", inputs.MarketTrend),
			Score:    clampScore(inputs.MarketTrend),
			MaxScore: 10,
			Weight:   0.2,
		},
		{
			Name:     "Demographics",
			RawValue: fmt.Sprintf("%.1f", inputs.Demographics),
			Score:    clampScore(inputs.Demographics),
			MaxScore: 10,
			Weight:   0.2,
		},
	}
	return combine(CategoryLocation, factors)
}
