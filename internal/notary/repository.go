package notary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const appointmentColumns = `id, property_id, status, proposed_dates, selected_date, confirmed_date,
	notary_name, notary_contact, customer_confirmed, backoffice_confirmed, documents_prepared,
	managed_by, synced_at, created_at, updated_at`

// Repository persists notary appointments. Each appointment belongs to
// exactly one property; writes are status-conditional so concurrent
// transitions surface as conflicts instead of silent overwrites.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an appointment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a newly proposed appointment.
func (r *Repository) Create(ctx context.Context, a *Appointment) error {
	dates, err := marshalDates(a.ProposedDates)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notary_appointments
		(id, property_id, status, proposed_dates, selected_date, confirmed_date,
		notary_name, notary_contact, customer_confirmed, backoffice_confirmed, documents_prepared,
		managed_by, synced_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PropertyID, string(a.Status), dates,
		a.SelectedDate, a.ConfirmedDate,
		a.NotaryName, a.NotaryContact,
		boolToInt(a.CustomerConfirmed), boolToInt(a.BackofficeConfirmed), boolToInt(a.DocumentsPrepared),
		string(a.ManagedBy), a.SyncedAt,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

// GetByProperty returns the appointment for a property, or ErrNotFound.
func (r *Repository) GetByProperty(ctx context.Context, propertyID int64) (*Appointment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM notary_appointments WHERE property_id = ?`,
		propertyID,
	)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("appointment for property %d: %w", propertyID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment for property %d: %w", propertyID, err)
	}
	return a, nil
}

// Update applies a transitioned appointment, guarded by the expected
// pre-state. If the row moved on since it was read, the write is rejected
// with ErrConflict.
func (r *Repository) Update(ctx context.Context, a *Appointment, expected Status) error {
	dates, err := marshalDates(a.ProposedDates)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE notary_appointments SET
		status = ?, proposed_dates = ?, selected_date = ?, confirmed_date = ?,
		notary_name = ?, notary_contact = ?,
		customer_confirmed = ?, backoffice_confirmed = ?, documents_prepared = ?,
		managed_by = ?, synced_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(a.Status), dates, a.SelectedDate, a.ConfirmedDate,
		a.NotaryName, a.NotaryContact,
		boolToInt(a.CustomerConfirmed), boolToInt(a.BackofficeConfirmed), boolToInt(a.DocumentsPrepared),
		string(a.ManagedBy), a.SyncedAt, a.UpdatedAt.UTC(),
		a.ID, string(expected),
	)
	if err != nil {
		return fmt.Errorf("updating appointment %s: %w", a.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM notary_appointments WHERE id = ?", a.ID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("appointment %s: %w", a.ID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking appointment %s: %w", a.ID, err)
		}
		return fmt.Errorf("appointment %s no longer in status %s: %w", a.ID, expected, ErrConflict)
	}

	return nil
}

// ApplySynced upserts externally-originated appointment state from the
// partner feed. Invariants are validated on ingress; the local transition
// rules do not apply to synced state.
func (r *Repository) ApplySynced(ctx context.Context, a *Appointment, syncedAt time.Time) (*Appointment, error) {
	if err := ValidateSynced(a); err != nil {
		return nil, err
	}

	stored := a.clone()
	stored.ManagedBy = ManagedPartner
	synced := syncedAt.UTC()
	stored.SyncedAt = &synced
	if stored.ID == "" {
		existing, err := r.GetByProperty(ctx, stored.PropertyID)
		switch {
		case err == nil:
			stored.ID = existing.ID
			stored.CreatedAt = existing.CreatedAt
		case errors.Is(err, ErrNotFound):
			stored.ID = uuid.New().String()
		default:
			return nil, err
		}
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = synced
	}
	stored.UpdatedAt = synced

	dates, err := marshalDates(stored.ProposedDates)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notary_appointments
		(id, property_id, status, proposed_dates, selected_date, confirmed_date,
		notary_name, notary_contact, customer_confirmed, backoffice_confirmed, documents_prepared,
		managed_by, synced_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(property_id) DO UPDATE SET
		status = excluded.status, proposed_dates = excluded.proposed_dates,
		selected_date = excluded.selected_date, confirmed_date = excluded.confirmed_date,
		notary_name = excluded.notary_name, notary_contact = excluded.notary_contact,
		customer_confirmed = excluded.customer_confirmed,
		backoffice_confirmed = excluded.backoffice_confirmed,
		documents_prepared = excluded.documents_prepared,
		managed_by = excluded.managed_by, synced_at = excluded.synced_at,
		updated_at = excluded.updated_at`,
		stored.ID, stored.PropertyID, string(stored.Status), dates,
		stored.SelectedDate, stored.ConfirmedDate,
		stored.NotaryName, stored.NotaryContact,
		boolToInt(stored.CustomerConfirmed), boolToInt(stored.BackofficeConfirmed), boolToInt(stored.DocumentsPrepared),
		string(stored.ManagedBy), stored.SyncedAt,
		stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("applying synced appointment: %w", err)
	}

	return r.GetByProperty(ctx, stored.PropertyID)
}

func scanAppointment(row interface{ Scan(...interface{}) error }) (*Appointment, error) {
	var a Appointment
	var status, managedBy, dates string
	var selected, confirmed, syncedAt sql.NullTime
	var customer, backoffice, documents int

	err := row.Scan(
		&a.ID, &a.PropertyID, &status, &dates, &selected, &confirmed,
		&a.NotaryName, &a.NotaryContact, &customer, &backoffice, &documents,
		&managedBy, &syncedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = Status(status)
	a.ManagedBy = ManagedBy(managedBy)
	a.CustomerConfirmed = customer != 0
	a.BackofficeConfirmed = backoffice != 0
	a.DocumentsPrepared = documents != 0
	if selected.Valid {
		d := selected.Time.UTC()
		a.SelectedDate = &d
	}
	if confirmed.Valid {
		d := confirmed.Time.UTC()
		a.ConfirmedDate = &d
	}
	if syncedAt.Valid {
		d := syncedAt.Time.UTC()
		a.SyncedAt = &d
	}
	if dates != "" {
		if err := json.Unmarshal([]byte(dates), &a.ProposedDates); err != nil {
			return nil, fmt.Errorf("parsing proposed dates: %w", err)
		}
	}
	for i := range a.ProposedDates {
		a.ProposedDates[i] = a.ProposedDates[i].UTC()
	}

	return &a, nil
}

func marshalDates(dates []time.Time) (string, error) {
	if dates == nil {
		dates = []time.Time{}
	}
	data, err := json.Marshal(dates)
	if err != nil {
		return "", fmt.Errorf("marshaling proposed dates: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
