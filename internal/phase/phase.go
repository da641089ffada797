// Package phase models the fixed six-phase development lifecycle and
// derives per-phase display status from a property's current phase.
package phase

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPhase is returned for phase numbers outside [1,6]. Out-of-range
// input is a caller bug and is rejected, never clamped.
var ErrInvalidPhase = errors.New("phase number must be 1-6")

// Status classifies a phase relative to the current one.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
)

// Phase is one fixed stage of the development-to-rental lifecycle. The
// planned duration is used for scheduling visualizations only.
type Phase struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	PlannedDays int    `json:"planned_days"`
}

// Phases is the canonical ordered sequence.
var Phases = [6]Phase{
	{1, "Pre-Check", 14},
	{2, "Purchase Decision", 7},
	{3, "Documentation", 39},
	{4, "Marketing", 60},
	{5, "Buyer & Notary", 30},
	{6, "Handover & Rental", 30},
}

// Count is the number of lifecycle phases.
const Count = len(Phases)

// PhaseStatus pairs a phase with its derived status.
type PhaseStatus struct {
	Phase  Phase  `json:"phase"`
	Status Status `json:"status"`
}

// State is the derived lifecycle view for one property.
type State struct {
	Current int           `json:"current"`
	Phases  []PhaseStatus `json:"phases"`
}

// DeriveState classifies every phase against the current one: earlier
// phases are completed, the current one active, later ones pending.
func DeriveState(current int) (State, error) {
	if current < 1 || current > Count {
		return State{}, fmt.Errorf("deriving state for phase %d: %w", current, ErrInvalidPhase)
	}

	statuses := make([]PhaseStatus, Count)
	for i, p := range Phases {
		ps := PhaseStatus{Phase: p, Status: StatusPending}
		switch {
		case p.Number < current:
			ps.Status = StatusCompleted
		case p.Number == current:
			ps.Status = StatusActive
		}
		statuses[i] = ps
	}

	return State{Current: current, Phases: statuses}, nil
}

// Progress returns the display progress percentage, current/6 × 100.
func (s State) Progress() float64 {
	return float64(s.Current) / float64(Count) * 100
}

// DaysIn returns whole days elapsed since the phase was entered. The caller
// owns both timestamps; the engine holds no clock state.
func DaysIn(enteredAt, now time.Time) int {
	if now.Before(enteredAt) {
		return 0
	}
	return int(now.Sub(enteredAt).Hours() / 24)
}
