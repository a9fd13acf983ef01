package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kitlog/kitlog-api/internal/model"
)

type EquipmentRepo struct{ DB *sql.DB }

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{DB: db} }

const equipmentCols = "id, name, description, category, brand, model, serial_number, " +
	"`condition`, is_available, location, notes, owner_id, team_id, created_at, updated_at"

func scanEquipment(s interface {
	Scan(dest ...interface{}) error
}) (model.Equipment, error) {
	var e model.Equipment
	err := s.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.Brand, &e.Model,
		&e.SerialNumber, &e.Condition, &e.IsAvailable, &e.Location, &e.Notes,
		&e.OwnerID, &e.TeamID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// EquipmentFilter narrows List results. Zero values mean "no filter".
type EquipmentFilter struct {
	Category      string
	AvailableOnly bool
	OwnerID       uint64
	TeamID        uint64
	Skip          int
	Limit         int
}

// EquipmentUpdate carries a partial update; nil fields are left untouched.
type EquipmentUpdate struct {
	Name         *string
	Description  *string
	Category     *string
	Brand        *string
	Model        *string
	SerialNumber *string
	Condition    *string
	IsAvailable  *bool
	Location     *string
	Notes        *string
	OwnerID      *uint64
	TeamID       *uint64
}

// Create inserts an equipment row. A duplicate serial number is ErrConflict;
// NULL serials never collide with each other.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO equipment (name, description, category, brand, model, serial_number, "+
			"`condition`, is_available, location, notes, owner_id, team_id) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.Name, e.Description, e.Category, e.Brand, e.Model, e.SerialNumber,
		e.Condition, e.IsAvailable, e.Location, e.Notes, e.OwnerID, e.TeamID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*e = got
	return nil
}

// GetByID fetches an equipment item by primary key.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (model.Equipment, error) {
	e, err := scanEquipment(r.DB.QueryRowContext(ctx,
		`SELECT `+equipmentCols+` FROM equipment WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.Equipment{}, ErrNotFound
	}
	return e, err
}

// List returns equipment matching the filter with offset paging.
func (r *EquipmentRepo) List(ctx context.Context, f EquipmentFilter) ([]model.Equipment, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.AvailableOnly {
		where = append(where, "is_available = 1")
	}
	if f.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.TeamID != 0 {
		where = append(where, "team_id = ?")
		args = append(args, f.TeamID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, limit, f.Skip)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+equipmentCols+` FROM equipment WHERE `+strings.Join(where, " AND ")+
			` ORDER BY id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update merges the supplied fields and returns the updated row. Serial
// uniqueness violations surface as ErrConflict.
func (r *EquipmentRepo) Update(ctx context.Context, id uint64, upd EquipmentUpdate) (model.Equipment, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Brand != nil {
		add("brand", *upd.Brand)
	}
	if upd.Model != nil {
		add("model", *upd.Model)
	}
	if upd.SerialNumber != nil {
		if *upd.SerialNumber == "" {
			sets = append(sets, "serial_number = NULL")
		} else {
			add("serial_number", *upd.SerialNumber)
		}
	}
	if upd.Condition != nil {
		add("`condition`", *upd.Condition)
	}
	if upd.IsAvailable != nil {
		add("is_available", *upd.IsAvailable)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.OwnerID != nil {
		if *upd.OwnerID == 0 {
			sets = append(sets, "owner_id = NULL")
		} else {
			add("owner_id", *upd.OwnerID)
		}
	}
	if upd.TeamID != nil {
		if *upd.TeamID == 0 {
			sets = append(sets, "team_id = NULL")
		} else {
			add("team_id", *upd.TeamID)
		}
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE equipment SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isDuplicate(err) {
			return model.Equipment{}, ErrConflict
		}
		return model.Equipment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Could be an identical overwrite; only a missing row is an error.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Equipment{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an equipment item.
func (r *EquipmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories returns the distinct category values in use.
func (r *EquipmentRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT category FROM equipment WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats aggregates inventory counts. When ownerID or teamID is non-zero the
// counts are scoped to that owner.
func (r *EquipmentRepo) Stats(ctx context.Context, ownerID, teamID uint64) (model.EquipmentStats, error) {
	where := "1=1"
	args := []interface{}{}
	if ownerID != 0 {
		where += " AND owner_id = ?"
		args = append(args, ownerID)
	}
	if teamID != 0 {
		where += " AND team_id = ?"
		args = append(args, teamID)
	}
	var s model.EquipmentStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_available), 0),
		        COUNT(DISTINCT category)
		 FROM equipment WHERE `+where, args...).Scan(
		&s.TotalItems, &s.AvailableItems, &s.Categories)
	if err != nil {
		return model.EquipmentStats{}, err
	}
	s.InUseItems = s.TotalItems - s.AvailableItems
	return s, nil
}
