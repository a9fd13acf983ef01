// Package repository implements data access for all KitLog entities over
// database/sql. Failures that callers need to distinguish are signaled with
// the sentinel errors below; handlers translate them into fixed HTTP status
// codes (404, 409, 403). Everything else surfaces as an opaque database
// error.
package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when an entity is absent or archived. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on uniqueness violations and invalid state
// transitions: duplicate memberships, duplicate serial numbers, accepting an
// already-accepted invitation, removing a team's last owner. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller lacks the role required for an
// operation. Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrExpired is returned when an invitation's validity window has passed.
// Handlers should translate this into an HTTP 400 response.
var ErrExpired = errors.New("expired")

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
// Unique indexes, not application-level existence checks, are the final
// arbiter for races on uniqueness constraints.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// affected maps a state-guarded write that touched no rows to sentinel. A
// zero-row result means a concurrent writer consumed the row between the
// read and the guarded write, so the caller's precondition no longer holds.
func affected(res sql.Result, err, sentinel error) error {
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel
	}
	return nil
}
