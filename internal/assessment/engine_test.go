package assessment

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func validSnapshot() Snapshot {
	return Snapshot{
		City:              "Berlin",
		EnergyClass:       EnergyB,
		EnergyConsumption: 90,
		HeatingType:       "gas condensing",
		ConstructionYear:  1995,
		LivingArea:        70,
		PurchasePrice:     280000,
		RenovationBudget:  30000,
		MonthlyRent:       1100,
		HOALandlord:       90,
		HOAReserve:        70,
		AsOf:              asOf2026(),
	}
}

func TestComputeCategoryScoresOrder(t *testing.T) {
	scores, err := ComputeCategoryScores(validSnapshot(), Inputs{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("scores = %d, want 4", len(scores))
	}

	want := []Category{CategoryEnergy, CategoryYield, CategoryHOA, CategoryLocation}
	for i, cat := range want {
		if scores[i].Category != cat {
			t.Errorf("scores[%d] = %s, want %s", i, scores[i].Category, cat)
		}
	}
}

func TestComputeCategoryScoresGate(t *testing.T) {
	snap := validSnapshot()
	snap.LivingArea = 0

	_, err := ComputeCategoryScores(snap, Inputs{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	mq := 5.0
	scores, err := ComputeCategoryScores(validSnapshot(), Inputs{
		HOA:      HOAInputs{ManagementQuality: &mq},
		Location: &LocationInputs{PublicTransport: 8, Amenities: 7, MarketTrend: 6, Demographics: 6},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	preview, err := ScoreHOAPreview(validSnapshot())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	scores = append(scores, preview)

	for _, s := range scores {
		var sum float64
		for _, f := range s.Factors {
			sum += f.Weight
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("%s weights sum to %v, want 1.0", s.Category, sum)
		}
	}
}

func TestDeriveStatusMonotonic(t *testing.T) {
	rank := map[Status]int{StatusRed: 0, StatusYellow: 1, StatusGreen: 2}

	prev := DeriveStatus(0)
	for score := 0.0; score <= 10.0; score += 0.1 {
		cur := DeriveStatus(score)
		if rank[cur] < rank[prev] {
			t.Fatalf("status worsened from %s to %s at score %v", prev, cur, score)
		}
		prev = cur
	}

	if DeriveStatus(7) != StatusGreen || DeriveStatus(6.99) != StatusYellow {
		t.Error("green boundary not at 7")
	}
	if DeriveStatus(4) != StatusYellow || DeriveStatus(3.99) != StatusRed {
		t.Error("yellow boundary not at 4")
	}
}

func TestAggregateAssessmentRules(t *testing.T) {
	mk := func(statuses ...Status) []CategoryScore {
		scores := make([]CategoryScore, len(statuses))
		for i, st := range statuses {
			scores[i] = CategoryScore{Status: st}
		}
		return scores
	}

	tests := []struct {
		name     string
		statuses []Status
		want     Verdict
	}{
		{"all green", []Status{StatusGreen, StatusGreen, StatusGreen, StatusGreen}, VerdictGood},
		{"one yellow", []Status{StatusGreen, StatusYellow, StatusGreen, StatusGreen}, VerdictGood},
		{"two yellow", []Status{StatusYellow, StatusYellow, StatusGreen, StatusGreen}, VerdictAttention},
		{"one red", []Status{StatusGreen, StatusGreen, StatusGreen, StatusRed}, VerdictCritical},
		{"red beats yellow", []Status{StatusYellow, StatusYellow, StatusRed, StatusGreen}, VerdictCritical},
	}
	for _, tt := range tests {
		got := AggregateAssessment(mk(tt.statuses...))
		if got.Verdict != tt.want {
			t.Errorf("%s: verdict = %s, want %s", tt.name, got.Verdict, tt.want)
		}
	}
}

func TestAggregateAssessmentCommutative(t *testing.T) {
	scores, err := ComputeCategoryScores(validSnapshot(), Inputs{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := AggregateAssessment(scores)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]CategoryScore, len(scores))
		copy(shuffled, scores)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := AggregateAssessment(shuffled); got != want {
			t.Fatalf("permutation %d: assessment = %+v, want %+v", i, got, want)
		}
	}
}

func TestAggregateCounts(t *testing.T) {
	scores := []CategoryScore{
		{Status: StatusGreen},
		{Status: StatusYellow},
		{Status: StatusYellow},
		{Status: StatusRed},
	}
	got := AggregateAssessment(scores)
	if got.GreenCount != 1 || got.YellowCount != 2 || got.RedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", got.GreenCount, got.YellowCount, got.RedCount)
	}
}
