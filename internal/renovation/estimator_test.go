package renovation

import (
	"math"
	"testing"
)

func TestEstimateBudget(t *testing.T) {
	est, err := EstimateBudget([]Trade{Electrical, Painting}, 80)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	// 75×80 + 25×80 = 8000
	if est.Total != 8000 {
		t.Errorf("total = %v, want 8000", est.Total)
	}
	if !est.Reliable {
		t.Error("expected reliable estimate")
	}
	if len(est.PerTrade) != 2 {
		t.Fatalf("per trade = %d, want 2", len(est.PerTrade))
	}
	if est.PerTrade[0].Cost != 6000 {
		t.Errorf("electrical cost = %v, want 6000", est.PerTrade[0].Cost)
	}
}

func TestEstimateLinearInArea(t *testing.T) {
	trades := []Trade{Plumbing, Bathroom, Flooring}

	small, err := EstimateBudget(trades, 55)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	double, err := EstimateBudget(trades, 110)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	if math.Abs(double.Total-2*small.Total) > 1e-9 {
		t.Errorf("estimate(2×area) = %v, want %v", double.Total, 2*small.Total)
	}
}

func TestEstimateZeroAreaUnreliable(t *testing.T) {
	est, err := EstimateBudget([]Trade{Kitchen}, 0)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if est.Total != 0 {
		t.Errorf("total = %v, want 0", est.Total)
	}
	if est.Reliable {
		t.Error("zero area must be flagged unreliable")
	}
}

func TestEstimateEmptySelectionReliable(t *testing.T) {
	est, err := EstimateBudget(nil, 80)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if est.Total != 0 || !est.Reliable {
		t.Errorf("empty selection = %+v, want zero total, reliable", est)
	}
}

func TestEstimateUnknownTrade(t *testing.T) {
	if _, err := EstimateBudget([]Trade{"landscaping"}, 80); err == nil {
		t.Fatal("expected error for unknown trade")
	}
}

func TestEstimateDeduplicatesSelection(t *testing.T) {
	once, err := EstimateBudget([]Trade{Painting}, 80)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	twice, err := EstimateBudget([]Trade{Painting, Painting}, 80)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if twice.Total != once.Total {
		t.Errorf("duplicated trade total = %v, want %v", twice.Total, once.Total)
	}
}
