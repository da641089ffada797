package notary

import (
	"context"
	"errors"
	"time"
)

// Service orchestrates workflow transitions against stored appointments
// with read-modify-write discipline: every write carries the status that
// was read, so racing updates fail with ErrConflict instead of clobbering
// each other.
type Service struct {
	repo *Repository
}

// NewService creates an appointment service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the appointment for a property.
func (s *Service) Get(ctx context.Context, propertyID int64) (*Appointment, error) {
	return s.repo.GetByProperty(ctx, propertyID)
}

// Propose creates or refreshes the date proposal for a property. The
// caller supplies the property's management mode; partner-managed
// properties reject local proposals.
func (s *Service) Propose(ctx context.Context, propertyID int64, managedBy ManagedBy, dates []time.Time, info NotaryInfo) (*Appointment, error) {
	appt, err := s.repo.GetByProperty(ctx, propertyID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	next, err := ProposeDates(appt, propertyID, managedBy, dates, info, time.Now())
	if err != nil {
		return nil, err
	}

	if appt == nil {
		if err := s.repo.Create(ctx, next); err != nil {
			return nil, err
		}
		return next, nil
	}
	if err := s.repo.Update(ctx, next, appt.Status); err != nil {
		return nil, err
	}
	return next, nil
}

// Supersede discards an existing selection and proposes fresh dates.
func (s *Service) Supersede(ctx context.Context, propertyID int64, dates []time.Time, info NotaryInfo) (*Appointment, error) {
	return s.transition(ctx, propertyID, func(appt *Appointment) (*Appointment, error) {
		return SupersedeProposal(appt, dates, info, time.Now())
	})
}

// Select records the customer's date choice.
func (s *Service) Select(ctx context.Context, propertyID int64, date time.Time) (*Appointment, error) {
	return s.transition(ctx, propertyID, func(appt *Appointment) (*Appointment, error) {
		return SelectDate(appt, date, time.Now())
	})
}

// Confirm fixes the selected date with the notary.
func (s *Service) Confirm(ctx context.Context, propertyID int64) (*Appointment, error) {
	return s.transition(ctx, propertyID, func(appt *Appointment) (*Appointment, error) {
		return Confirm(appt, time.Now())
	})
}

// MarkDocumentsPrepared records document readiness.
func (s *Service) MarkDocumentsPrepared(ctx context.Context, propertyID int64) (*Appointment, error) {
	return s.transition(ctx, propertyID, func(appt *Appointment) (*Appointment, error) {
		return MarkDocumentsPrepared(appt, time.Now())
	})
}

// Complete finalizes the sale.
func (s *Service) Complete(ctx context.Context, propertyID int64) (*Appointment, error) {
	return s.transition(ctx, propertyID, func(appt *Appointment) (*Appointment, error) {
		return Complete(appt, time.Now())
	})
}

// Sync ingests externally-originated appointment state for a
// partner-managed property.
func (s *Service) Sync(ctx context.Context, appt *Appointment, syncedAt time.Time) (*Appointment, error) {
	return s.repo.ApplySynced(ctx, appt, syncedAt)
}

func (s *Service) transition(ctx context.Context, propertyID int64, apply func(*Appointment) (*Appointment, error)) (*Appointment, error) {
	appt, err := s.repo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	next, err := apply(appt)
	if err != nil {
		return nil, err
	}

	// Idempotent replays change nothing; skip the write.
	if next.Status == appt.Status && next.UpdatedAt.Equal(appt.UpdatedAt) {
		return next, nil
	}

	if err := s.repo.Update(ctx, next, appt.Status); err != nil {
		return nil, err
	}
	return next, nil
}
