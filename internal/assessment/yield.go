package assessment

import (
	"fmt"
	"strings"
)

// sqmThresholds holds the city-specific "good" and "fair" purchase price
// boundaries per square meter.
type sqmThresholds struct {
	good float64
	fair float64
}

var citySqmThresholds = map[string]sqmThresholds{
	"munich":  {good: 6000, fair: 8000},
	"münchen": {good: 6000, fair: 8000},
	"berlin":  {good: 4000, fair: 6000},
	"hamburg": {good: 4500, fair: 6500},
}

var defaultSqmThresholds = sqmThresholds{good: 3500, fair: 5000}

// ScoreYield rates the investment return: gross rental yield, market
// comparison, price per square meter, and renovation ratio.
// The market comparison is an external input; absent it, a neutral score
// is substituted so the remaining factors still carry their weights.
func ScoreYield(snap Snapshot, marketComparison *float64) (CategoryScore, error) {
	if !snap.HasMinimalData() {
		return CategoryScore{}, fmt.Errorf("scoring yield: %w", ErrInsufficientData)
	}

	grossYield := snap.AnnualRent() / snap.TotalInvestment() * 100
	pricePerSqm := snap.PurchasePrice / snap.LivingArea
	ratio := snap.RenovationBudget / snap.PurchasePrice

	market := float64(neutralScore)
	marketRaw := "n/a"
	if marketComparison != nil {
		market = clampScore(*marketComparison)
		marketRaw = fmt.Sprintf("%.1f", *marketComparison)
	}

	factors := []ScoreFactor{
		{
			Name:     "Gross rental yield",
			RawValue: fmt.Sprintf("%.2f%%", grossYield),
			Score:    grossYieldScore(grossYield),
			MaxScore: 10,
			Weight:   0.4,
		},
		{
			Name:     "Market comparison",
			RawValue: marketRaw,
			Score:    market,
			MaxScore: 10,
			Weight:   0.2,
		},
		{
			Name:     "Price per m²",
			RawValue: fmt.Sprintf("%.0f €/m²", pricePerSqm),
			Score:    pricePerSqmScore(snap.City, pricePerSqm),
			MaxScore: 10,
			Weight:   0.2,
		},
		{
			Name:     "Renovation ratio",
			RawValue: fmt.Sprintf("%.0f%%", ratio*100),
			Score:    renovationRatioScore(ratio),
			MaxScore: 10,
			Weight:   0.2,
		},
	}
	return combine(CategoryYield, factors), nil
}

func grossYieldScore(pct float64) float64 {
	switch {
	case pct >= 6:
		return 10
	case pct >= 4:
		return 6
	case pct >= 2:
		return 3
	default:
		return 0
	}
}

func pricePerSqmScore(city string, price float64) float64 {
	t, ok := citySqmThresholds[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		t = defaultSqmThresholds
	}
	switch {
	case price <= t.good:
		return 10
	case price <= t.fair:
		return 6
	default:
		return 2
	}
}

func renovationRatioScore(ratio float64) float64 {
	switch {
	case ratio <= 0.10:
		return 10
	case ratio <= 0.20:
		return 7
	case ratio <= 0.30:
		return 4
	default:
		return 0
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
