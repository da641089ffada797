package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		address            TEXT    NOT NULL,
		city               TEXT    NOT NULL DEFAULT '',
		energy_class       TEXT,
		energy_consumption REAL,
		heating_type       TEXT,
		construction_year  INTEGER,
		living_area        REAL    NOT NULL DEFAULT 0,
		purchase_price     REAL    NOT NULL DEFAULT 0,
		renovation_budget  REAL    NOT NULL DEFAULT 0,
		monthly_rent       REAL,
		room_rents         TEXT,
		hoa_landlord       REAL    NOT NULL DEFAULT 0,
		hoa_tenant         REAL    NOT NULL DEFAULT 0,
		hoa_reserve        REAL    NOT NULL DEFAULT 0,
		current_phase      INTEGER NOT NULL DEFAULT 1 CHECK (current_phase >= 1 AND current_phase <= 6),
		phase_entered_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		sales_channel      TEXT    NOT NULL DEFAULT 'internal' CHECK (sales_channel IN ('internal', 'partner')),
		created_at         DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS phase_transitions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		phase       INTEGER NOT NULL CHECK (phase >= 1 AND phase <= 6),
		entered_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notary_appointments (
		id                   TEXT    PRIMARY KEY,
		property_id          INTEGER NOT NULL UNIQUE REFERENCES properties(id) ON DELETE CASCADE,
		status               TEXT    NOT NULL,
		proposed_dates       TEXT    NOT NULL DEFAULT '[]',
		selected_date        DATETIME,
		confirmed_date       DATETIME,
		notary_name          TEXT    NOT NULL DEFAULT '',
		notary_contact       TEXT    NOT NULL DEFAULT '',
		customer_confirmed   INTEGER NOT NULL DEFAULT 0,
		backoffice_confirmed INTEGER NOT NULL DEFAULT 0,
		documents_prepared   INTEGER NOT NULL DEFAULT 0,
		managed_by           TEXT    NOT NULL DEFAULT 'internal' CHECK (managed_by IN ('internal', 'partner')),
		synced_at            DATETIME,
		created_at           DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at           DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phase_transitions_property
		ON phase_transitions(property_id, entered_at)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
