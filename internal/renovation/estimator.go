// Package renovation estimates renovation budgets from a trade selection
// and a floor area.
package renovation

import (
	"fmt"
	"sort"
)

// Trade identifies a renovation trade category.
type Trade string

const (
	Electrical Trade = "electrical"
	Plumbing   Trade = "plumbing"
	Painting   Trade = "painting"
	Flooring   Trade = "flooring"
	Kitchen    Trade = "kitchen"
	Bathroom   Trade = "bathroom"
	Roofing    Trade = "roofing"
	Windows    Trade = "windows"
	Heating    Trade = "heating"
	Facade     Trade = "facade"
)

// costPerSqm is the fixed EUR/m² rate per trade. Static domain data, not
// runtime configuration.
var costPerSqm = map[Trade]float64{
	Electrical: 75,
	Plumbing:   90,
	Painting:   25,
	Flooring:   60,
	Kitchen:    110,
	Bathroom:   140,
	Roofing:    180,
	Windows:    95,
	Heating:    120,
	Facade:     100,
}

// Trades lists all known trades in stable order.
func Trades() []Trade {
	trades := make([]Trade, 0, len(costPerSqm))
	for t := range costPerSqm {
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool { return trades[i] < trades[j] })
	return trades
}

// Valid returns true if t is a known trade.
func (t Trade) Valid() bool {
	_, ok := costPerSqm[t]
	return ok
}

// Rate returns the trade's EUR/m² rate, or 0 for unknown trades.
func (t Trade) Rate() float64 {
	return costPerSqm[t]
}

// TradeCost is the per-trade share of an estimate.
type TradeCost struct {
	Trade Trade   `json:"trade"`
	Rate  float64 `json:"rate_per_sqm"`
	Cost  float64 `json:"cost"`
}

// Estimate is a renovation budget broken down by trade. Reliable is false
// when the living area was missing, which is distinct from a legitimate
// empty selection.
type Estimate struct {
	Total    float64     `json:"total"`
	PerTrade []TradeCost `json:"per_trade"`
	Reliable bool        `json:"reliable"`
}

// EstimateBudget prices the selected trades against the living area.
// Duplicate trades in the selection are counted once.
func EstimateBudget(trades []Trade, livingArea float64) (Estimate, error) {
	seen := make(map[Trade]bool, len(trades))
	var selection []Trade
	for _, t := range trades {
		if !t.Valid() {
			return Estimate{}, fmt.Errorf("unknown trade: %q", t)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		selection = append(selection, t)
	}

	if livingArea <= 0 {
		return Estimate{Reliable: false}, nil
	}

	est := Estimate{Reliable: true}
	for _, t := range selection {
		rate := costPerSqm[t]
		cost := rate * livingArea
		est.PerTrade = append(est.PerTrade, TradeCost{Trade: t, Rate: rate, Cost: cost})
		est.Total += cost
	}
	return est, nil
}
