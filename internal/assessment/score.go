package assessment

// Status is the traffic-light summary of a quantitative score.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// Category identifies one of the four scoring dimensions.
type Category string

const (
	CategoryEnergy   Category = "energy"
	CategoryYield    Category = "yield"
	CategoryHOA      Category = "hoa"
	CategoryLocation Category = "location"
)

// ScoreFactor is one measurable attribute inside a category: a raw value, a
// normalized sub-score, and its weight within the category.
type ScoreFactor struct {
	Name     string  `json:"name"`
	RawValue string  `json:"raw_value"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
}

// CategoryScore is the weighted result of one category, recomputed on every
// input change and never persisted by the engine.
type CategoryScore struct {
	Category         Category      `json:"category"`
	WeightedScore    float64       `json:"weighted_score"`
	MaxWeightedScore float64       `json:"max_weighted_score"`
	Status           Status        `json:"status"`
	Factors          []ScoreFactor `json:"factors"`
}

// DeriveStatus maps a weighted score to its traffic light. The thresholds
// are uniform across all categories: >=7 green, >=4 yellow, else red.
func DeriveStatus(score float64) Status {
	switch {
	case score >= 7:
		return StatusGreen
	case score >= 4:
		return StatusYellow
	default:
		return StatusRed
	}
}

// combine folds factors into a CategoryScore, weighting each sub-score.
func combine(cat Category, factors []ScoreFactor) CategoryScore {
	var weighted, max float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
		max += f.MaxScore * f.Weight
	}
	return CategoryScore{
		Category:         cat,
		WeightedScore:    weighted,
		MaxWeightedScore: max,
		Status:           DeriveStatus(weighted),
		Factors:          factors,
	}
}
