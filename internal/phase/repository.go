package phase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotForward is returned when an advance targets the current phase or an
// earlier one. The lifecycle only moves forward.
var ErrNotForward = errors.New("phase can only advance forward")

// Transition records a property entering a phase.
type Transition struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	Phase      int       `json:"phase"`
	EnteredAt  time.Time `json:"entered_at"`
}

// Repository records phase transitions and keeps the property's current
// phase in step with its history.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a phase repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Advance moves a property to a later phase, updating the stored current
// phase and appending a history row in one transaction. What business steps
// unlock an advance is the caller's concern; only monotonicity is enforced
// here.
func (r *Repository) Advance(propertyID int64, to int) (*Transition, error) {
	if to < 1 || to > Count {
		return nil, fmt.Errorf("advancing property %d: %w", propertyID, ErrInvalidPhase)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current int
	err = tx.QueryRow("SELECT current_phase FROM properties WHERE id = ?", propertyID).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d not found", propertyID)
	}
	if err != nil {
		return nil, fmt.Errorf("reading current phase: %w", err)
	}

	if to <= current {
		return nil, fmt.Errorf("advancing property %d from phase %d to %d: %w", propertyID, current, to, ErrNotForward)
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(
		"UPDATE properties SET current_phase = ?, phase_entered_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		to, now, propertyID,
	); err != nil {
		return nil, fmt.Errorf("updating current phase: %w", err)
	}

	result, err := tx.Exec(
		"INSERT INTO phase_transitions (property_id, phase, entered_at) VALUES (?, ?, ?)",
		propertyID, to, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting transition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &Transition{ID: id, PropertyID: propertyID, Phase: to, EnteredAt: now}, nil
}

// History returns a property's phase transitions, oldest first.
func (r *Repository) History(propertyID int64) ([]*Transition, error) {
	rows, err := r.db.Query(
		"SELECT id, property_id, phase, entered_at FROM phase_transitions WHERE property_id = ? ORDER BY entered_at, id",
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var transitions []*Transition
	for rows.Next() {
		var t Transition
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.Phase, &t.EnteredAt); err != nil {
			return nil, fmt.Errorf("scanning transition: %w", err)
		}
		transitions = append(transitions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transitions: %w", err)
	}

	return transitions, nil
}

// Latest returns the most recent phase transition for a property, or nil if
// none has been recorded.
func (r *Repository) Latest(propertyID int64) (*Transition, error) {
	var t Transition
	err := r.db.QueryRow(
		"SELECT id, property_id, phase, entered_at FROM phase_transitions WHERE property_id = ? ORDER BY entered_at DESC, id DESC LIMIT 1",
		propertyID,
	).Scan(&t.ID, &t.PropertyID, &t.Phase, &t.EnteredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading latest transition: %w", err)
	}
	return &t, nil
}
