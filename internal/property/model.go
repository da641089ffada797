// Package property provides the investment property domain model and data access.
package property

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jsteiner/grundwerk/internal/assessment"
)

// SalesChannel distinguishes internally marketed properties from those a
// partner manages end to end.
type SalesChannel string

const (
	ChannelInternal SalesChannel = "internal"
	ChannelPartner  SalesChannel = "partner"
)

// ValidSalesChannel returns true if s is a known sales channel.
func ValidSalesChannel(s string) bool {
	switch SalesChannel(s) {
	case ChannelInternal, ChannelPartner:
		return true
	}
	return false
}

// Property represents a tracked development project property.
type Property struct {
	ID                int64        `json:"id"`
	Address           string       `json:"address"`
	City              string       `json:"city"`
	EnergyClass       *string      `json:"energy_class,omitempty"`
	EnergyConsumption *float64     `json:"energy_consumption,omitempty"`
	HeatingType       *string      `json:"heating_type,omitempty"`
	ConstructionYear  *int64       `json:"construction_year,omitempty"`
	LivingArea        float64      `json:"living_area"`
	PurchasePrice     float64      `json:"purchase_price"`
	RenovationBudget  float64      `json:"renovation_budget"`
	MonthlyRent       *float64     `json:"monthly_rent,omitempty"`
	RoomRents         []float64    `json:"room_rents,omitempty"`
	HOALandlord       float64      `json:"hoa_landlord"`
	HOATenant         float64      `json:"hoa_tenant"`
	HOAReserve        float64      `json:"hoa_reserve"`
	CurrentPhase      int          `json:"current_phase"`
	PhaseEnteredAt    time.Time    `json:"phase_entered_at"`
	SalesChannel      SalesChannel `json:"sales_channel"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Snapshot builds the immutable scoring input from the stored record.
func (p *Property) Snapshot() assessment.Snapshot {
	snap := assessment.Snapshot{
		City:             p.City,
		LivingArea:       p.LivingArea,
		PurchasePrice:    p.PurchasePrice,
		RenovationBudget: p.RenovationBudget,
		RoomRents:        p.RoomRents,
		HOALandlord:      p.HOALandlord,
		HOATenant:        p.HOATenant,
		HOAReserve:       p.HOAReserve,
	}
	if p.EnergyClass != nil {
		snap.EnergyClass = assessment.EnergyClass(*p.EnergyClass)
	}
	if p.EnergyConsumption != nil {
		snap.EnergyConsumption = *p.EnergyConsumption
	}
	if p.HeatingType != nil {
		snap.HeatingType = *p.HeatingType
	}
	if p.ConstructionYear != nil {
		snap.ConstructionYear = int(*p.ConstructionYear)
	}
	if p.MonthlyRent != nil {
		snap.MonthlyRent = *p.MonthlyRent
	}
	return snap
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	var energyClass, heatingType sql.NullString
	var energyConsumption, monthlyRent sql.NullFloat64
	var constructionYear sql.NullInt64
	var roomRents sql.NullString
	var salesChannel string

	err := row.Scan(
		&p.ID, &p.Address, &p.City,
		&energyClass, &energyConsumption, &heatingType, &constructionYear,
		&p.LivingArea, &p.PurchasePrice, &p.RenovationBudget,
		&monthlyRent, &roomRents,
		&p.HOALandlord, &p.HOATenant, &p.HOAReserve,
		&p.CurrentPhase, &p.PhaseEnteredAt, &salesChannel,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if energyClass.Valid {
		p.EnergyClass = &energyClass.String
	}
	if energyConsumption.Valid {
		p.EnergyConsumption = &energyConsumption.Float64
	}
	if heatingType.Valid {
		p.HeatingType = &heatingType.String
	}
	if constructionYear.Valid {
		p.ConstructionYear = &constructionYear.Int64
	}
	if monthlyRent.Valid {
		p.MonthlyRent = &monthlyRent.Float64
	}
	if roomRents.Valid && roomRents.String != "" {
		if err := json.Unmarshal([]byte(roomRents.String), &p.RoomRents); err != nil {
			return nil, fmt.Errorf("parsing room rents: %w", err)
		}
	}
	p.SalesChannel = SalesChannel(salesChannel)
	if p.SalesChannel == "" {
		p.SalesChannel = ChannelInternal
	}

	return &p, nil
}
