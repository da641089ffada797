package notary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProposeDates starts the workflow (appt == nil) or refreshes an unselected
// proposal. Exactly three strictly-future dates are required. Re-invoking
// with the identical proposal is a no-op; once a customer has selected a
// date, a new proposal needs SupersedeProposal.
func ProposeDates(appt *Appointment, propertyID int64, managedBy ManagedBy, dates []time.Time, info NotaryInfo, now time.Time) (*Appointment, error) {
	if managedBy == ManagedPartner {
		return nil, fmt.Errorf("proposing dates for property %d: %w", propertyID, ErrPartnerManaged)
	}
	if err := checkProposal(dates, now); err != nil {
		return nil, err
	}

	if appt == nil {
		return &Appointment{
			ID:            uuid.New().String(),
			PropertyID:    propertyID,
			Status:        StatusProposed,
			ProposedDates: normalizeDates(dates),
			NotaryName:    info.Name,
			NotaryContact: info.Contact,
			ManagedBy:     ManagedInternal,
			CreatedAt:     now.UTC(),
			UpdatedAt:     now.UTC(),
		}, nil
	}

	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("proposing dates for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}
	if appt.Status != StatusPreparation && appt.Status != StatusProposed {
		return nil, fmt.Errorf("proposing dates in status %s: %w", appt.Status, ErrInvalidTransition)
	}

	next := appt.clone()
	next.Status = StatusProposed
	next.ProposedDates = normalizeDates(dates)
	next.NotaryName = info.Name
	next.NotaryContact = info.Contact
	next.UpdatedAt = now.UTC()
	return next, nil
}

// SupersedeProposal explicitly discards an existing selection and restarts
// the negotiation with a fresh set of three dates. Completed appointments
// cannot be reopened.
func SupersedeProposal(appt *Appointment, dates []time.Time, info NotaryInfo, now time.Time) (*Appointment, error) {
	if appt == nil {
		return nil, fmt.Errorf("superseding proposal: %w", ErrNotFound)
	}
	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("superseding proposal for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}
	if appt.Status == StatusCompleted {
		return nil, fmt.Errorf("superseding completed appointment: %w", ErrInvalidTransition)
	}
	if err := checkProposal(dates, now); err != nil {
		return nil, err
	}

	next := appt.clone()
	next.Status = StatusProposed
	next.ProposedDates = normalizeDates(dates)
	next.SelectedDate = nil
	next.ConfirmedDate = nil
	next.CustomerConfirmed = false
	next.BackofficeConfirmed = false
	next.DocumentsPrepared = false
	next.NotaryName = info.Name
	next.NotaryContact = info.Contact
	next.UpdatedAt = now.UTC()
	return next, nil
}

// SelectDate records the customer's choice of one of the proposed dates.
func SelectDate(appt *Appointment, date time.Time, now time.Time) (*Appointment, error) {
	if appt == nil {
		return nil, fmt.Errorf("selecting date: %w", ErrNotFound)
	}
	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("selecting date for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}

	date = date.UTC()
	if appt.Status == StatusCustomerSelected {
		if appt.SelectedDate != nil && appt.SelectedDate.Equal(date) {
			return appt.clone(), nil
		}
		return nil, fmt.Errorf("changing an existing selection: %w", ErrInvalidTransition)
	}
	if appt.Status != StatusProposed {
		return nil, fmt.Errorf("selecting date in status %s: %w", appt.Status, ErrInvalidTransition)
	}
	if !appt.hasProposed(date) {
		return nil, fmt.Errorf("selecting %s: %w", date.Format(time.RFC3339), ErrInvalidSelection)
	}

	next := appt.clone()
	next.Status = StatusCustomerSelected
	next.SelectedDate = &date
	next.CustomerConfirmed = true
	next.UpdatedAt = now.UTC()
	return next, nil
}

// Confirm fixes the selected date with the notary.
func Confirm(appt *Appointment, now time.Time) (*Appointment, error) {
	if appt == nil {
		return nil, fmt.Errorf("confirming appointment: %w", ErrNotFound)
	}
	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("confirming appointment for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}
	if appt.Status == StatusBackofficeConfirmed {
		return appt.clone(), nil
	}
	if appt.Status != StatusCustomerSelected || appt.SelectedDate == nil {
		return nil, fmt.Errorf("confirming without a selected date: %w", ErrInvalidTransition)
	}

	next := appt.clone()
	next.Status = StatusBackofficeConfirmed
	confirmed := *next.SelectedDate
	next.ConfirmedDate = &confirmed
	next.BackofficeConfirmed = true
	next.UpdatedAt = now.UTC()
	return next, nil
}

// MarkDocumentsPrepared records that the transfer documents are ready.
func MarkDocumentsPrepared(appt *Appointment, now time.Time) (*Appointment, error) {
	if appt == nil {
		return nil, fmt.Errorf("marking documents prepared: %w", ErrNotFound)
	}
	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("marking documents for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}
	if appt.Status == StatusDocumentsPrepared {
		return appt.clone(), nil
	}
	if appt.Status != StatusBackofficeConfirmed {
		return nil, fmt.Errorf("marking documents in status %s: %w", appt.Status, ErrInvalidTransition)
	}

	next := appt.clone()
	next.Status = StatusDocumentsPrepared
	next.DocumentsPrepared = true
	next.UpdatedAt = now.UTC()
	return next, nil
}

// Complete finalizes the sale. The appointment stays on file; no further
// transition is accepted afterwards.
func Complete(appt *Appointment, now time.Time) (*Appointment, error) {
	if appt == nil {
		return nil, fmt.Errorf("completing appointment: %w", ErrNotFound)
	}
	if appt.ManagedBy == ManagedPartner {
		return nil, fmt.Errorf("completing appointment for property %d: %w", appt.PropertyID, ErrPartnerManaged)
	}
	if appt.Status == StatusCompleted {
		return appt.clone(), nil
	}
	if appt.Status != StatusDocumentsPrepared {
		return nil, fmt.Errorf("completing in status %s: %w", appt.Status, ErrInvalidTransition)
	}

	next := appt.clone()
	next.Status = StatusCompleted
	next.UpdatedAt = now.UTC()
	return next, nil
}

func checkProposal(dates []time.Time, now time.Time) error {
	if len(dates) != 3 {
		return fmt.Errorf("proposing %d dates: %w", len(dates), ErrInvalidDateProposal)
	}
	for _, d := range dates {
		if !d.After(now) {
			return fmt.Errorf("proposing past date %s: %w", d.Format(time.RFC3339), ErrInvalidDateProposal)
		}
	}
	return nil
}

func normalizeDates(dates []time.Time) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = d.UTC()
	}
	return out
}
