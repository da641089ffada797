// Package notary coordinates the appointment negotiation between internal
// staff and a buyer as an explicit, forward-only state machine.
package notary

import (
	"errors"
	"fmt"
	"time"
)

// Workflow errors. All are recoverable at the caller boundary and map to
// user feedback; none abort the host process.
var (
	ErrNotFound            = errors.New("appointment not found")
	ErrInvalidDateProposal = errors.New("exactly 3 future dates required")
	ErrInvalidSelection    = errors.New("date is not among the proposed dates")
	ErrInvalidTransition   = errors.New("invalid appointment transition")
	ErrConflict            = errors.New("appointment was modified concurrently")
	ErrPartnerManaged      = errors.New("appointment is partner-managed; updates arrive via the sync feed")
)

// Status is the appointment workflow state.
type Status string

const (
	StatusPreparation         Status = "preparation"
	StatusProposed            Status = "proposed"
	StatusCustomerSelected    Status = "customer_selected"
	StatusBackofficeConfirmed Status = "backoffice_confirmed"
	StatusDocumentsPrepared   Status = "documents_prepared"
	StatusCompleted           Status = "completed"
)

// statusOrder ranks statuses along the forward-only workflow.
var statusOrder = map[Status]int{
	StatusPreparation:         0,
	StatusProposed:            1,
	StatusCustomerSelected:    2,
	StatusBackofficeConfirmed: 3,
	StatusDocumentsPrepared:   4,
	StatusCompleted:           5,
}

// ValidStatus returns true if s is a known workflow status.
func ValidStatus(s string) bool {
	_, ok := statusOrder[Status(s)]
	return ok
}

// ManagedBy distinguishes appointments driven locally from those owned by
// an external sales partner.
type ManagedBy string

const (
	ManagedInternal ManagedBy = "internal"
	ManagedPartner  ManagedBy = "partner"
)

// NotaryInfo identifies the notary handling the transfer.
type NotaryInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Appointment is the one stateful object the engine owns. It is created on
// the first date proposal, mutated only through workflow transitions (or,
// for partner-managed properties, the sync feed), and never deleted.
type Appointment struct {
	ID                  string      `json:"id"`
	PropertyID          int64       `json:"property_id"`
	Status              Status      `json:"status"`
	ProposedDates       []time.Time `json:"proposed_dates"`
	SelectedDate        *time.Time  `json:"selected_date,omitempty"`
	ConfirmedDate       *time.Time  `json:"confirmed_date,omitempty"`
	NotaryName          string      `json:"notary_name"`
	NotaryContact       string      `json:"notary_contact"`
	CustomerConfirmed   bool        `json:"customer_confirmed"`
	BackofficeConfirmed bool        `json:"backoffice_confirmed"`
	DocumentsPrepared   bool        `json:"documents_prepared"`
	ManagedBy           ManagedBy   `json:"managed_by"`
	SyncedAt            *time.Time  `json:"synced_at,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// clone returns a deep copy so transitions never mutate their input.
func (a *Appointment) clone() *Appointment {
	c := *a
	c.ProposedDates = append([]time.Time(nil), a.ProposedDates...)
	if a.SelectedDate != nil {
		d := *a.SelectedDate
		c.SelectedDate = &d
	}
	if a.ConfirmedDate != nil {
		d := *a.ConfirmedDate
		c.ConfirmedDate = &d
	}
	if a.SyncedAt != nil {
		d := *a.SyncedAt
		c.SyncedAt = &d
	}
	return &c
}

// hasProposed reports whether date is one of the proposed dates.
func (a *Appointment) hasProposed(date time.Time) bool {
	for _, d := range a.ProposedDates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// ValidateSynced checks the invariants of externally-originated appointment
// state. The sync feed may deliver states the local transition functions
// never produced, so invariants are enforced on ingress, not only locally.
func ValidateSynced(a *Appointment) error {
	if a == nil {
		return fmt.Errorf("validating synced appointment: nil appointment")
	}
	if !ValidStatus(string(a.Status)) {
		return fmt.Errorf("validating synced appointment: unknown status %q", a.Status)
	}
	if a.PropertyID == 0 {
		return fmt.Errorf("validating synced appointment: missing property id")
	}
	if n := len(a.ProposedDates); n != 0 && n != 3 {
		return fmt.Errorf("validating synced appointment: %d proposed dates: %w", n, ErrInvalidDateProposal)
	}
	if statusOrder[a.Status] >= statusOrder[StatusProposed] && len(a.ProposedDates) != 3 {
		return fmt.Errorf("validating synced appointment: status %s without proposals: %w", a.Status, ErrInvalidTransition)
	}
	if a.SelectedDate != nil && !a.hasProposed(*a.SelectedDate) {
		return fmt.Errorf("validating synced appointment: %w", ErrInvalidSelection)
	}
	if statusOrder[a.Status] >= statusOrder[StatusCustomerSelected] && a.SelectedDate == nil {
		return fmt.Errorf("validating synced appointment: status %s without selection: %w", a.Status, ErrInvalidTransition)
	}
	if a.ConfirmedDate != nil {
		if a.SelectedDate == nil || !a.ConfirmedDate.Equal(*a.SelectedDate) {
			return fmt.Errorf("validating synced appointment: confirmed date diverges from selection: %w", ErrInvalidTransition)
		}
	}
	if statusOrder[a.Status] >= statusOrder[StatusBackofficeConfirmed] && a.ConfirmedDate == nil {
		return fmt.Errorf("validating synced appointment: status %s without confirmed date: %w", a.Status, ErrInvalidTransition)
	}
	return nil
}
