package assessment

import "fmt"

// Verdict is the overall investment assessment derived from the four
// category statuses.
type Verdict string

const (
	VerdictGood      Verdict = "good"
	VerdictAttention Verdict = "attention"
	VerdictCritical  Verdict = "critical"
)

// OverallAssessment summarizes the four categories into one verdict plus
// per-status counts for display.
type OverallAssessment struct {
	Verdict     Verdict `json:"verdict"`
	GreenCount  int     `json:"green_count"`
	YellowCount int     `json:"yellow_count"`
	RedCount    int     `json:"red_count"`
}

// Inputs carries the externally supplied qualitative data the scorers
// cannot derive from the snapshot itself.
type Inputs struct {
	MarketComparison *float64
	HOA              HOAInputs
	Location         *LocationInputs

	// HOAPreview selects the reduced two-factor HOA variant for contexts
	// where only fee figures exist and the qualitative defaults would
	// overstate confidence.
	HOAPreview bool
}

// ComputeCategoryScores runs all four scorers in fixed order
// (energy, yield, hoa, location). It refuses to score a snapshot missing
// living area or purchase price rather than produce spurious numbers.
func ComputeCategoryScores(snap Snapshot, inputs Inputs) ([]CategoryScore, error) {
	if !snap.HasMinimalData() {
		return nil, fmt.Errorf("computing scores: %w", ErrInsufficientData)
	}

	yield, err := ScoreYield(snap, inputs.MarketComparison)
	if err != nil {
		return nil, err
	}
	var hoa CategoryScore
	if inputs.HOAPreview {
		hoa, err = ScoreHOAPreview(snap)
	} else {
		hoa, err = ScoreHOA(snap, inputs.HOA)
	}
	if err != nil {
		return nil, err
	}

	return []CategoryScore{
		ScoreEnergy(snap),
		yield,
		hoa,
		ScoreLocation(snap, inputs.Location),
	}, nil
}

// AggregateAssessment reduces category scores to the overall verdict:
// any red is critical, two or more yellows need attention, otherwise good.
// The result depends only on the multiset of statuses, not their order.
func AggregateAssessment(scores []CategoryScore) OverallAssessment {
	var a OverallAssessment
	for _, s := range scores {
		switch s.Status {
		case StatusGreen:
			a.GreenCount++
		case StatusYellow:
			a.YellowCount++
		case StatusRed:
			a.RedCount++
		}
	}

	switch {
	case a.RedCount > 0:
		a.Verdict = VerdictCritical
	case a.YellowCount >= 2:
		a.Verdict = VerdictAttention
	default:
		a.Verdict = VerdictGood
	}
	return a
}
