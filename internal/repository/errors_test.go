package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestIsDuplicate(t *testing.T) {
	if !isDuplicate(errors.New("Error 1062 (23000): Duplicate entry 'SN-1' for key 'uq_equipment_serial'")) {
		t.Fatal("duplicate-key error not recognized")
	}
	if isDuplicate(errors.New("Error 1452: foreign key constraint fails")) {
		t.Fatal("unrelated error treated as duplicate")
	}
	if isDuplicate(nil) {
		t.Fatal("nil error treated as duplicate")
	}
}

type fakeResult struct{ rows int64 }

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, nil }

// A guarded write that matches no rows lost a race with a concurrent state
// change; cancelling or re-roling an invitation that was accepted in the
// meantime must surface as a conflict, not silent success.
func TestAffected(t *testing.T) {
	if err := affected(fakeResult{rows: 1}, nil, ErrConflict); err != nil {
		t.Fatalf("one row affected: err = %v", err)
	}
	if err := affected(fakeResult{rows: 0}, nil, ErrConflict); err != ErrConflict {
		t.Fatalf("zero rows affected: err = %v, want ErrConflict", err)
	}
	boom := errors.New("connection reset")
	if err := affected(nil, boom, ErrConflict); err != boom {
		t.Fatalf("exec error: err = %v, want passthrough", err)
	}
}

// The purge inside invitation Create may only ever remove rows that are both
// unaccepted and past their expiry; a broader predicate would delete pending
// invitations out from under their invitees.
func TestPurgeExpiredInvitesScope(t *testing.T) {
	for _, clause := range []string{
		"team_id = ? AND email = ?",
		"is_accepted = 0",
		"expires_at <= UTC_TIMESTAMP()",
	} {
		if !strings.Contains(purgeExpiredInvites, clause) {
			t.Errorf("purge query lost clause %q", clause)
		}
	}
}

// The owner count backing the last-owner guard must lock the rows it counts
// and count only owners, or two concurrent removals could each see a spare.
func TestOwnerCountQueryShape(t *testing.T) {
	for _, clause := range []string{"COUNT(*)", "role = ?", "FOR UPDATE"} {
		if !strings.Contains(ownerCountQuery, clause) {
			t.Errorf("owner count query lost clause %q", clause)
		}
	}
}

// Each column list must line up with its scanner's destination count; a
// drifted list fails every read in that repo.
func TestColumnListShapes(t *testing.T) {
	cases := []struct {
		name string
		cols string
		want int
	}{
		{"membership", membershipCols, 5},
		{"checkout", checkoutCols, 9},
		{"invitation", invitationCols, 10},
		{"user", userCols, 14},
		{"equipment", equipmentCols, 15},
	}
	for _, tc := range cases {
		if got := len(strings.Split(tc.cols, ",")); got != tc.want {
			t.Errorf("%s columns = %d, want %d", tc.name, got, tc.want)
		}
	}
}
