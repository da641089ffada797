package assessment

import (
	"fmt"
	"strings"
)

// neutralScore stands in for factors whose raw data is unknown.
const neutralScore = 5

var energyClassScores = map[EnergyClass]float64{
	EnergyAPlus: 10,
	EnergyA:     9,
	EnergyB:     8,
	EnergyC:     7,
	EnergyD:     6,
	EnergyE:     4,
	EnergyF:     3,
	EnergyG:     1,
	EnergyH:     0,
}

var heatingTypeScores = map[string]float64{
	"heat pump":        10,
	"district heating": 8,
	"pellet":           8,
	"solar thermal":    9,
	"gas condensing":   7,
	"gas":              5,
	"electric":         3,
	"oil":              2,
	"night storage":    1,
}

// ScoreEnergy rates the energy dimension from certificate class, measured
// consumption, heating system, and building age.
func ScoreEnergy(snap Snapshot) CategoryScore {
	factors := []ScoreFactor{
		{
			Name:     "Energy class",
			RawValue: string(snap.EnergyClass),
			Score:    energyClassScore(snap.EnergyClass),
			MaxScore: 10,
			Weight:   0.3,
		},
		{
			Name:     "Consumption",
			RawValue: fmt.Sprintf("%.0f kWh/m²a", snap.EnergyConsumption),
			Score:    consumptionScore(snap.EnergyConsumption),
			MaxScore: 10,
			Weight:   0.3,
		},
		{
			Name:     "Heating system",
			RawValue: snap.HeatingType,
			Score:    heatingScore(snap.HeatingType),
			MaxScore: 10,
			Weight:   0.2,
		},
		{
			Name:     "Building age",
			RawValue: fmt.Sprintf("built %d", snap.ConstructionYear),
			Score:    buildingAgeScore(snap.ConstructionYear, snap.asOf().Year()),
			MaxScore: 10,
			Weight:   0.2,
		},
	}
	return combine(CategoryEnergy, factors)
}

func energyClassScore(c EnergyClass) float64 {
	if s, ok := energyClassScores[c]; ok {
		return s
	}
	return neutralScore
}

func consumptionScore(kwh float64) float64 {
	if kwh <= 0 {
		return neutralScore
	}
	switch {
	case kwh <= 50:
		return 10
	case kwh <= 75:
		return 8
	case kwh <= 100:
		return 6
	case kwh <= 150:
		return 4
	case kwh <= 200:
		return 2
	default:
		return 0
	}
}

func heatingScore(heating string) float64 {
	if s, ok := heatingTypeScores[strings.ToLower(strings.TrimSpace(heating))]; ok {
		return s
	}
	return neutralScore
}

func buildingAgeScore(year, currentYear int) float64 {
	if year <= 0 {
		return neutralScore
	}
	age := currentYear - year
	switch {
	case age <= 5:
		return 10
	case age <= 15:
		return 8
	case age <= 30:
		return 6
	case age <= 50:
		return 4
	default:
		return 2
	}
}
