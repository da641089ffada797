package phase

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDeriveStateMidLifecycle(t *testing.T) {
	state, err := DeriveState(3)
	if err != nil {
		t.Fatalf("derive state: %v", err)
	}

	want := []Status{StatusCompleted, StatusCompleted, StatusActive, StatusPending, StatusPending, StatusPending}
	if len(state.Phases) != len(want) {
		t.Fatalf("phases = %d, want %d", len(state.Phases), len(want))
	}
	for i, w := range want {
		if state.Phases[i].Status != w {
			t.Errorf("phase %d status = %s, want %s", i+1, state.Phases[i].Status, w)
		}
	}
}

func TestDeriveStateBoundaries(t *testing.T) {
	first, err := DeriveState(1)
	if err != nil {
		t.Fatalf("derive state 1: %v", err)
	}
	if first.Phases[0].Status != StatusActive {
		t.Errorf("phase 1 status = %s, want active", first.Phases[0].Status)
	}

	last, err := DeriveState(6)
	if err != nil {
		t.Fatalf("derive state 6: %v", err)
	}
	for i := 0; i < 5; i++ {
		if last.Phases[i].Status != StatusCompleted {
			t.Errorf("phase %d status = %s, want completed", i+1, last.Phases[i].Status)
		}
	}
	if last.Phases[5].Status != StatusActive {
		t.Errorf("phase 6 status = %s, want active", last.Phases[5].Status)
	}
}

func TestDeriveStateRejectsOutOfRange(t *testing.T) {
	for _, p := range []int{0, -1, 7, 100} {
		_, err := DeriveState(p)
		if !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("DeriveState(%d) err = %v, want ErrInvalidPhase", p, err)
		}
	}
}

func TestProgress(t *testing.T) {
	state, err := DeriveState(3)
	if err != nil {
		t.Fatalf("derive state: %v", err)
	}
	if math.Abs(state.Progress()-50.0) > 1e-9 {
		t.Errorf("progress = %v, want 50", state.Progress())
	}
}

func TestPlannedDurations(t *testing.T) {
	want := []int{14, 7, 39, 60, 30, 30}
	for i, p := range Phases {
		if p.PlannedDays != want[i] {
			t.Errorf("phase %d planned days = %d, want %d", p.Number, p.PlannedDays, want[i])
		}
		if p.Number != i+1 {
			t.Errorf("phase at index %d numbered %d", i, p.Number)
		}
	}
}

func TestDaysIn(t *testing.T) {
	entered := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := DaysIn(entered, entered.Add(49*time.Hour)); got != 2 {
		t.Errorf("DaysIn = %d, want 2", got)
	}
	if got := DaysIn(entered, entered.Add(-time.Hour)); got != 0 {
		t.Errorf("DaysIn before entry = %d, want 0", got)
	}
}
