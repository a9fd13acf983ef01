package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kitlog/kitlog-api/internal/model"
)

type InvitationRepo struct{ DB *sql.DB }

func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{DB: db} }

const invitationCols = `id, team_id, email, role, token, created_at, expires_at,
	is_accepted, accepted_at, invited_by`

// purgeExpiredInvites clears expired unaccepted rows for a (team, email)
// pair so they cannot block a new invitation; pending and accepted rows are
// never touched.
const purgeExpiredInvites = `DELETE FROM team_invitations
	 WHERE team_id = ? AND email = ? AND is_accepted = 0 AND expires_at <= UTC_TIMESTAMP()`

func scanInvitation(s interface {
	Scan(dest ...interface{}) error
}) (model.TeamInvitation, error) {
	var i model.TeamInvitation
	err := s.Scan(&i.ID, &i.TeamID, &i.Email, &i.Role, &i.Token, &i.CreatedAt,
		&i.ExpiresAt, &i.IsAccepted, &i.AcceptedAt, &i.InvitedBy)
	return i, err
}

// Create stores a new invitation. Expired unaccepted rows for the same
// (team, email) pair are purged first so they cannot block the insert; the
// unique index over (team_id, pending_email) then guarantees at most one
// pending invitation per pair even when two creations race, surfacing the
// loser as ErrConflict.
func (r *InvitationRepo) Create(ctx context.Context, inv *model.TeamInvitation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, purgeExpiredInvites, inv.TeamID, inv.Email); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO team_invitations (team_id, email, role, token, expires_at, invited_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.TeamID, inv.Email, inv.Role, inv.Token, inv.ExpiresAt.UTC(), inv.InvitedBy)
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
	inv.ID = uint64(id)

	got, err := scanInvitation(tx.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM team_invitations WHERE id = ?`, inv.ID))
	if err != nil {
		return err
	}
	*inv = got
	return tx.Commit()
}

// GetByToken fetches an invitation by its token, in whatever state.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (model.TeamInvitation, error) {
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM team_invitations WHERE token = ? LIMIT 1`, token))
	if err == sql.ErrNoRows {
		return model.TeamInvitation{}, ErrNotFound
	}
	return inv, err
}

// GetByID fetches an invitation by primary key.
func (r *InvitationRepo) GetByID(ctx context.Context, id uint64) (model.TeamInvitation, error) {
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM team_invitations WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.TeamInvitation{}, ErrNotFound
	}
	return inv, err
}

// ListByTeam returns every invitation for a team, newest first.
func (r *InvitationRepo) ListByTeam(ctx context.Context, teamID uint64) ([]model.TeamInvitation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+invitationCols+` FROM team_invitations WHERE team_id = ? ORDER BY created_at DESC`,
		teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TeamInvitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Accept consumes a pending invitation for the given user: it re-validates
// the invitation state under lock, then marks it accepted and inserts the
// membership row in the same transaction. Acceptance is terminal; a consumed
// token can never be accepted again.
func (r *InvitationRepo) Accept(ctx context.Context, token string, userID uint64, now time.Time) (model.TeamMembership, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.TeamMembership{}, err
	}
	defer func() { _ = tx.Rollback() }()

	inv, err := scanInvitation(tx.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM team_invitations WHERE token = ? FOR UPDATE`, token))
	if err == sql.ErrNoRows {
		return model.TeamMembership{}, ErrNotFound
	}
	if err != nil {
		return model.TeamMembership{}, err
	}
	if inv.IsAccepted {
		return model.TeamMembership{}, ErrConflict
	}
	if inv.Expired(now) {
		return model.TeamMembership{}, ErrExpired
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE team_invitations SET is_accepted = 1, accepted_at = ? WHERE id = ? AND is_accepted = 0`,
		now.UTC(), inv.ID)
	if err := affected(res, err, ErrConflict); err != nil {
		return model.TeamMembership{}, err
	}

	mres, err := tx.ExecContext(ctx,
		`INSERT INTO team_memberships (team_id, user_id, role) VALUES (?, ?, ?)`,
		inv.TeamID, userID, inv.Role)
	if err != nil {
		if isDuplicate(err) {
			// Accepting user already holds a membership on this team.
			return model.TeamMembership{}, ErrConflict
		}
		return model.TeamMembership{}, err
	}
	mid, err := mres.LastInsertId()
	if err != nil {
		return model.TeamMembership{}, err
	}

	var m model.TeamMembership
	if err := tx.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM team_memberships WHERE id = ?`, mid).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
		return model.TeamMembership{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.TeamMembership{}, err
	}
	return m, nil
}

// UpdateRole overwrites the proposed role of an invitation that is still
// pending. Accepted invitations are immutable and expired ones cannot be
// revived, both rejected with ErrConflict.
func (r *InvitationRepo) UpdateRole(ctx context.Context, id uint64, role string, now time.Time) (model.TeamInvitation, error) {
	inv, err := r.GetByID(ctx, id)
	if err != nil {
		return model.TeamInvitation{}, err
	}
	if inv.IsAccepted || inv.Expired(now) {
		return model.TeamInvitation{}, ErrConflict
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE team_invitations SET role = ? WHERE id = ? AND is_accepted = 0`,
		role, id)
	// Zero rows means an accept landed since the read above.
	if err := affected(res, err, ErrConflict); err != nil {
		return model.TeamInvitation{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete cancels an invitation by removing the row. Accepted invitations
// cannot be cancelled.
func (r *InvitationRepo) Delete(ctx context.Context, id uint64) error {
	inv, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.IsAccepted {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM team_invitations WHERE id = ? AND is_accepted = 0`, id)
	return affected(res, err, ErrConflict)
}
