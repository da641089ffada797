package phase

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jsteiner/grundwerk/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return d
}

func insertTestProperty(t *testing.T, d *sql.DB) int64 {
	t.Helper()
	result, err := d.Exec(
		"INSERT INTO properties (address, city, living_area, purchase_price) VALUES (?, ?, ?, ?)",
		"Testweg 1", "Berlin", 60, 250000,
	)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("insert id: %v", err)
	}
	return id
}

func TestAdvanceRecordsTransition(t *testing.T) {
	d := testDB(t)
	repo := NewRepository(d)
	id := insertTestProperty(t, d)

	tr, err := repo.Advance(id, 2)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if tr.Phase != 2 {
		t.Errorf("transition phase = %d, want 2", tr.Phase)
	}

	var current int
	if err := d.QueryRow("SELECT current_phase FROM properties WHERE id = ?", id).Scan(&current); err != nil {
		t.Fatalf("read phase: %v", err)
	}
	if current != 2 {
		t.Errorf("current phase = %d, want 2", current)
	}

	history, err := repo.History(id)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Phase != 2 {
		t.Errorf("history = %+v, want single phase-2 entry", history)
	}
}

func TestAdvanceRejectsBackward(t *testing.T) {
	d := testDB(t)
	repo := NewRepository(d)
	id := insertTestProperty(t, d)

	if _, err := repo.Advance(id, 3); err != nil {
		t.Fatalf("advance to 3: %v", err)
	}

	_, err := repo.Advance(id, 2)
	if !errors.Is(err, ErrNotForward) {
		t.Fatalf("backward advance err = %v, want ErrNotForward", err)
	}
	_, err = repo.Advance(id, 3)
	if !errors.Is(err, ErrNotForward) {
		t.Fatalf("same-phase advance err = %v, want ErrNotForward", err)
	}
}

func TestAdvanceRejectsOutOfRange(t *testing.T) {
	d := testDB(t)
	repo := NewRepository(d)
	id := insertTestProperty(t, d)

	_, err := repo.Advance(id, 7)
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("err = %v, want ErrInvalidPhase", err)
	}
}

func TestAdvanceMissingProperty(t *testing.T) {
	repo := NewRepository(testDB(t))

	if _, err := repo.Advance(424242, 2); err == nil {
		t.Fatal("expected error for missing property")
	}
}

func TestLatest(t *testing.T) {
	d := testDB(t)
	repo := NewRepository(d)
	id := insertTestProperty(t, d)

	latest, err := repo.Latest(id)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("latest = %+v, want nil before any advance", latest)
	}

	if _, err := repo.Advance(id, 2); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := repo.Advance(id, 4); err != nil {
		t.Fatalf("advance: %v", err)
	}

	latest, err = repo.Latest(id)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.Phase != 4 {
		t.Fatalf("latest = %+v, want phase 4", latest)
	}
}
