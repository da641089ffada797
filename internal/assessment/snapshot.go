// Package assessment scores a property on four weighted dimensions and
// reduces each to a traffic-light status.
package assessment

import (
	"errors"
	"time"
)

// ErrInsufficientData is returned when scoring is attempted without the
// minimal required fields (living area and purchase price).
var ErrInsufficientData = errors.New("insufficient data for scoring")

// EnergyClass is a German energy certificate class, A+ (best) through H.
type EnergyClass string

const (
	EnergyAPlus EnergyClass = "A+"
	EnergyA     EnergyClass = "A"
	EnergyB     EnergyClass = "B"
	EnergyC     EnergyClass = "C"
	EnergyD     EnergyClass = "D"
	EnergyE     EnergyClass = "E"
	EnergyF     EnergyClass = "F"
	EnergyG     EnergyClass = "G"
	EnergyH     EnergyClass = "H"
)

// Snapshot is the immutable property input to the scorers. Callers build it
// from their own records; the engine never reads storage directly.
type Snapshot struct {
	City             string
	EnergyClass      EnergyClass
	EnergyConsumption float64 // kWh/m²a, 0 = unknown
	HeatingType      string
	ConstructionYear int // 0 = unknown

	LivingArea       float64 // m²
	PurchasePrice    float64 // EUR
	RenovationBudget float64 // EUR
	MonthlyRent      float64 // EUR, standard letting
	RoomRents        []float64 // EUR per room, shared lettings

	HOALandlord float64 // EUR/month, landlord-borne
	HOATenant   float64 // EUR/month, tenant-borne
	HOAReserve  float64 // EUR/month, reserve fund

	// AsOf anchors age calculations. Zero means "now".
	AsOf time.Time
}

// HasMinimalData reports whether the snapshot carries the fields required
// before any financial score may be computed.
func (s Snapshot) HasMinimalData() bool {
	return s.LivingArea > 0 && s.PurchasePrice > 0
}

// AnnualRent returns twelve months of rent. For shared lettings the per-room
// rents are summed; otherwise the standard monthly rent is used.
func (s Snapshot) AnnualRent() float64 {
	if len(s.RoomRents) > 0 {
		var sum float64
		for _, r := range s.RoomRents {
			sum += r
		}
		return sum * 12
	}
	return s.MonthlyRent * 12
}

// TotalInvestment is purchase price plus renovation budget.
func (s Snapshot) TotalInvestment() float64 {
	return s.PurchasePrice + s.RenovationBudget
}

func (s Snapshot) asOf() time.Time {
	if s.AsOf.IsZero() {
		return time.Now()
	}
	return s.AsOf
}
