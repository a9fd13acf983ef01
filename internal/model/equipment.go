package model

import "time"

// Equipment conditions, best to worst.
const (
	ConditionExcellent   = "excellent"
	ConditionGood        = "good"
	ConditionFair        = "fair"
	ConditionPoor        = "poor"
	ConditionNeedsRepair = "needs_repair"
)

// ValidCondition reports whether s is a known condition value.
func ValidCondition(s string) bool {
	switch s {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionNeedsRepair:
		return true
	}
	return false
}

// Equipment mirrors the `equipment` table. Ownership is optional on both
// axes: OwnerID references a user, TeamID a team, and either or both may be
// unset. SerialNumber is unique when present; NULL serials never collide.
type Equipment struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	Brand        *string   `json:"brand,omitempty"`
	Model        *string   `json:"model,omitempty"`
	SerialNumber *string   `json:"serial_number,omitempty"`
	Condition    string    `json:"condition"`
	IsAvailable  bool      `json:"is_available"`
	Location     *string   `json:"location,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	OwnerID      *uint64   `json:"owner_id,omitempty"`
	TeamID       *uint64   `json:"team_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EquipmentCheckout mirrors the `equipment_checkouts` table. At most one
// active checkout exists per item; checking in closes the row and flips the
// item back to available.
type EquipmentCheckout struct {
	ID            uint64     `json:"id"`
	EquipmentID   uint64     `json:"equipment_id"`
	UserID        uint64     `json:"user_id"`
	CheckedOutAt  time.Time  `json:"checked_out_at"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	CheckoutNotes *string    `json:"checkout_notes,omitempty"`
	CheckinNotes  *string    `json:"checkin_notes,omitempty"`
	IsActive      bool       `json:"is_active"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// EquipmentStats aggregates inventory counts, optionally scoped to an owner.
type EquipmentStats struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	InUseItems     int `json:"in_use_items"`
	Categories     int `json:"categories"`
}
