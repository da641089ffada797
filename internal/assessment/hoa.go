package assessment

import "fmt"

// HOAInputs are the qualitative HOA factors the engine cannot derive from
// fee figures. When a pointer is nil the documented default is substituted.
type HOAInputs struct {
	ManagementQuality *float64 // default 7
	BuildingCondition *float64 // default 6
}

const (
	defaultManagementQuality = 7
	defaultBuildingCondition = 6
)

// ScoreHOA rates the recurring-fee dimension: landlord-borne fees per square
// meter, reserve fund adequacy, and two external qualitative factors.
func ScoreHOA(snap Snapshot, inputs HOAInputs) (CategoryScore, error) {
	if !snap.HasMinimalData() {
		return CategoryScore{}, fmt.Errorf("scoring hoa: %w", ErrInsufficientData)
	}

	feesPerSqm := (snap.HOALandlord + snap.HOAReserve) / snap.LivingArea
	reservePerSqm := snap.HOAReserve / snap.LivingArea

	management := float64(defaultManagementQuality)
	if inputs.ManagementQuality != nil {
		management = clampScore(*inputs.ManagementQuality)
	}
	condition := float64(defaultBuildingCondition)
	if inputs.BuildingCondition != nil {
		condition = clampScore(*inputs.BuildingCondition)
	}

	factors := []ScoreFactor{
		{
			Name:     "Fees per m²",
			RawValue: fmt.Sprintf("%.2f €/m²", feesPerSqm),
			Score:    hoaFeesScore(feesPerSqm),
			MaxScore: 10,
			Weight:   0.4,
		},
		{
			Name:     "Reserve adequacy",
			RawValue: fmt.Sprintf("%.2f €/m²", reservePerSqm),
			Score:    reserveScore(reservePerSqm),
			MaxScore: 10,
			Weight:   0.3,
		},
		{
			Name:     "Management quality",
			RawValue: fmt.Sprintf("%.1f", management),
			Score:    management,
			MaxScore: 10,
			Weight:   0.2,
		},
		{
			Name:     "Building condition",
			RawValue: fmt.Sprintf("%.1f", condition),
			Score:    condition,
			MaxScore: 10,
			Weight:   0.1,
		},
	}
	return combine(CategoryHOA, factors), nil
}

// ScoreHOAPreview is the reduced two-factor variant used when only fee
// figures are available. Zero-cost records score neutral rather than
// pretending a perfect fee structure.
func ScoreHOAPreview(snap Snapshot) (CategoryScore, error) {
	if !snap.HasMinimalData() {
		return CategoryScore{}, fmt.Errorf("scoring hoa preview: %w", ErrInsufficientData)
	}

	feesPerSqm := (snap.HOALandlord + snap.HOAReserve) / snap.LivingArea
	reservePerSqm := snap.HOAReserve / snap.LivingArea

	fees := hoaFeesScore(feesPerSqm)
	if snap.HOALandlord == 0 && snap.HOAReserve == 0 {
		fees = neutralScore
	}

	factors := []ScoreFactor{
		{
			Name:     "Fees per m²",
			RawValue: fmt.Sprintf("%.2f €/m²", feesPerSqm),
			Score:    fees,
			MaxScore: 10,
			Weight:   0.6,
		},
		{
			Name:     "Reserve adequacy",
			RawValue: fmt.Sprintf("%.2f €/m²", reservePerSqm),
			Score:    reserveScore(reservePerSqm),
			MaxScore: 10,
			Weight:   0.4,
		},
	}
	return combine(CategoryHOA, factors), nil
}

func hoaFeesScore(perSqm float64) float64 {
	switch {
	case perSqm <= 2:
		return 10
	case perSqm <= 4:
		return 7
	case perSqm <= 6:
		return 4
	default:
		return 0
	}
}

func reserveScore(perSqm float64) float64 {
	switch {
	case perSqm >= 1:
		return 10
	case perSqm >= 0.5:
		return 6
	default:
		return 2
	}
}
