package assessment

import (
	"errors"
	"testing"
)

func TestScoreHOADefaults(t *testing.T) {
	snap := Snapshot{
		LivingArea:    80,
		PurchasePrice: 250000,
		HOALandlord:   100,
		HOAReserve:    80,
	}

	got, err := ScoreHOA(snap, HOAInputs{})
	if err != nil {
		t.Fatalf("score hoa: %v", err)
	}

	// (100+80)/80 = 2.25 €/m² → 7; reserve 1.0 €/m² → 10
	if got.Factors[0].Score != 7 {
		t.Errorf("fees factor = %v, want 7", got.Factors[0].Score)
	}
	if got.Factors[1].Score != 10 {
		t.Errorf("reserve factor = %v, want 10", got.Factors[1].Score)
	}
	// defaults: management 7, condition 6
	if got.Factors[2].Score != 7 || got.Factors[3].Score != 6 {
		t.Errorf("qualitative defaults = %v/%v, want 7/6", got.Factors[2].Score, got.Factors[3].Score)
	}
}

func TestScoreHOAExplicitInputsOverrideDefaults(t *testing.T) {
	snap := Snapshot{LivingArea: 80, PurchasePrice: 250000, HOALandlord: 100, HOAReserve: 80}
	mq := 3.0
	bc := 9.0

	got, err := ScoreHOA(snap, HOAInputs{ManagementQuality: &mq, BuildingCondition: &bc})
	if err != nil {
		t.Fatalf("score hoa: %v", err)
	}
	if got.Factors[2].Score != 3 || got.Factors[3].Score != 9 {
		t.Errorf("qualitative factors = %v/%v, want 3/9", got.Factors[2].Score, got.Factors[3].Score)
	}
}

func TestScoreHOAPreviewZeroCostNeutral(t *testing.T) {
	snap := Snapshot{LivingArea: 80, PurchasePrice: 250000}

	got, err := ScoreHOAPreview(snap)
	if err != nil {
		t.Fatalf("score hoa preview: %v", err)
	}
	if got.Factors[0].Score != 5 {
		t.Errorf("zero-cost fees factor = %v, want neutral 5", got.Factors[0].Score)
	}
	if len(got.Factors) != 2 {
		t.Fatalf("factors = %d, want 2", len(got.Factors))
	}
	if got.Factors[0].Weight != 0.6 || got.Factors[1].Weight != 0.4 {
		t.Errorf("preview weights = %v/%v, want 0.6/0.4", got.Factors[0].Weight, got.Factors[1].Weight)
	}
}

func TestScoreHOARequiresMinimalData(t *testing.T) {
	_, err := ScoreHOA(Snapshot{HOALandlord: 100}, HOAInputs{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
	_, err = ScoreHOAPreview(Snapshot{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("preview err = %v, want ErrInsufficientData", err)
	}
}

func TestReserveBands(t *testing.T) {
	tests := []struct {
		perSqm float64
		want   float64
	}{
		{1.5, 10},
		{1.0, 10},
		{0.7, 6},
		{0.2, 2},
	}
	for _, tt := range tests {
		if got := reserveScore(tt.perSqm); got != tt.want {
			t.Errorf("reserveScore(%v) = %v, want %v", tt.perSqm, got, tt.want)
		}
	}
}
