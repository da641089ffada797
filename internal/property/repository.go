package property

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for properties.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO properties
	(address, city, energy_class, energy_consumption, heating_type, construction_year,
	living_area, purchase_price, renovation_budget, monthly_rent, room_rents,
	hoa_landlord, hoa_tenant, hoa_reserve, sales_channel)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `id, address, city, energy_class, energy_consumption, heating_type,
	construction_year, living_area, purchase_price, renovation_budget, monthly_rent, room_rents,
	hoa_landlord, hoa_tenant, hoa_reserve, current_phase, phase_entered_at, sales_channel,
	created_at, updated_at`

// Insert adds a new property and returns it with its generated ID.
// New properties always start in phase 1.
func (r *Repository) Insert(p *Property) (*Property, error) {
	if p.SalesChannel == "" {
		p.SalesChannel = ChannelInternal
	}
	if !ValidSalesChannel(string(p.SalesChannel)) {
		return nil, fmt.Errorf("invalid sales channel: %s", p.SalesChannel)
	}

	roomRents, err := marshalRoomRents(p.RoomRents)
	if err != nil {
		return nil, err
	}

	result, err := r.db.Exec(insertSQL,
		p.Address, p.City,
		p.EnergyClass, p.EnergyConsumption, p.HeatingType, p.ConstructionYear,
		p.LivingArea, p.PurchasePrice, p.RenovationBudget,
		p.MonthlyRent, roomRents,
		p.HOALandlord, p.HOATenant, p.HOAReserve,
		string(p.SalesChannel),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(id int64) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}

	return p, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	Phase        *int
	SalesChannel SalesChannel // empty = all
}

// List returns all properties, optionally filtered.
func (r *Repository) List(opts ListOptions) ([]*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.Phase != nil {
		conditions = append(conditions, "current_phase = ?")
		args = append(args, *opts.Phase)
	}

	if opts.SalesChannel != "" {
		conditions = append(conditions, "sales_channel = ?")
		args = append(args, string(opts.SalesChannel))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY current_phase DESC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var properties []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// UpdateFinancials sets the purchase price, renovation budget, and rent
// figures for a property.
func (r *Repository) UpdateFinancials(id int64, purchasePrice, renovationBudget float64, monthlyRent *float64, roomRents []float64) error {
	rents, err := marshalRoomRents(roomRents)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		`UPDATE properties SET purchase_price = ?, renovation_budget = ?, monthly_rent = ?,
		room_rents = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		purchasePrice, renovationBudget, monthlyRent, rents, id,
	)
	if err != nil {
		return fmt.Errorf("updating financials: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

// Delete removes a property by ID. Phase history and appointments cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

func marshalRoomRents(rents []float64) (*string, error) {
	if len(rents) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(rents)
	if err != nil {
		return nil, fmt.Errorf("marshaling room rents: %w", err)
	}
	s := string(data)
	return &s, nil
}
