package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kitlog/kitlog-api/internal/model"
)

type CheckoutRepo struct{ DB *sql.DB }

func NewCheckoutRepo(db *sql.DB) *CheckoutRepo { return &CheckoutRepo{DB: db} }

const checkoutCols = `id, equipment_id, user_id, checked_out_at, checked_in_at,
	checkout_notes, checkin_notes, is_active, due_date`

func scanCheckout(s interface {
	Scan(dest ...interface{}) error
}) (model.EquipmentCheckout, error) {
	var c model.EquipmentCheckout
	err := s.Scan(&c.ID, &c.EquipmentID, &c.UserID, &c.CheckedOutAt, &c.CheckedInAt,
		&c.CheckoutNotes, &c.CheckinNotes, &c.IsActive, &c.DueDate)
	return c, err
}

// Checkout opens a checkout for an equipment item and flips it to
// unavailable in one transaction. The item row is locked first so two
// concurrent checkouts cannot both succeed; an unavailable item or an
// existing active checkout is ErrConflict.
func (r *CheckoutRepo) Checkout(ctx context.Context, equipmentID, userID uint64, notes *string, due *time.Time) (model.EquipmentCheckout, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var available bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_available FROM equipment WHERE id = ? FOR UPDATE`, equipmentID).Scan(&available)
	if err == sql.ErrNoRows {
		return model.EquipmentCheckout{}, ErrNotFound
	}
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	if !available {
		return model.EquipmentCheckout{}, ErrConflict
	}

	var active int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM equipment_checkouts WHERE equipment_id = ? AND is_active = 1`,
		equipmentID).Scan(&active); err != nil {
		return model.EquipmentCheckout{}, err
	}
	if active > 0 {
		return model.EquipmentCheckout{}, ErrConflict
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO equipment_checkouts (equipment_id, user_id, checkout_notes, due_date)
		 VALUES (?, ?, ?, ?)`, equipmentID, userID, notes, due)
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.EquipmentCheckout{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE equipment SET is_available = 0, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		equipmentID); err != nil {
		return model.EquipmentCheckout{}, err
	}

	c, err := scanCheckout(tx.QueryRowContext(ctx,
		`SELECT `+checkoutCols+` FROM equipment_checkouts WHERE id = ?`, id))
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.EquipmentCheckout{}, err
	}
	return c, nil
}

// Checkin closes the active checkout for an item and flips it back to
// available in one transaction. Without an active checkout the call is
// ErrNotFound.
func (r *CheckoutRepo) Checkin(ctx context.Context, equipmentID uint64, notes *string, now time.Time) (model.EquipmentCheckout, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	defer func() { _ = tx.Rollback() }()

	c, err := scanCheckout(tx.QueryRowContext(ctx,
		`SELECT `+checkoutCols+` FROM equipment_checkouts
		 WHERE equipment_id = ? AND is_active = 1 FOR UPDATE`, equipmentID))
	if err == sql.ErrNoRows {
		return model.EquipmentCheckout{}, ErrNotFound
	}
	if err != nil {
		return model.EquipmentCheckout{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE equipment_checkouts SET is_active = 0, checked_in_at = ?, checkin_notes = ? WHERE id = ?`,
		now.UTC(), notes, c.ID); err != nil {
		return model.EquipmentCheckout{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE equipment SET is_available = 1, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		equipmentID); err != nil {
		return model.EquipmentCheckout{}, err
	}

	c, err = scanCheckout(tx.QueryRowContext(ctx,
		`SELECT `+checkoutCols+` FROM equipment_checkouts WHERE id = ?`, c.ID))
	if err != nil {
		return model.EquipmentCheckout{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.EquipmentCheckout{}, err
	}
	return c, nil
}

// ListByEquipment returns the checkout history of an item, newest first.
func (r *CheckoutRepo) ListByEquipment(ctx context.Context, equipmentID uint64) ([]model.EquipmentCheckout, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+checkoutCols+` FROM equipment_checkouts
		 WHERE equipment_id = ? ORDER BY checked_out_at DESC`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EquipmentCheckout{}
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
