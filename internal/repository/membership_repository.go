package repository

import (
	"context"
	"database/sql"

	"github.com/kitlog/kitlog-api/internal/model"
)

type MembershipRepo struct{ DB *sql.DB }

func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{DB: db} }

const membershipCols = `id, team_id, user_id, role, joined_at`

// Add inserts a membership row. The (team, user) unique index turns a
// duplicate into ErrConflict regardless of which request loses the race.
func (r *MembershipRepo) Add(ctx context.Context, teamID, userID uint64, role string) (model.TeamMembership, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO team_memberships (team_id, user_id, role) VALUES (?, ?, ?)`,
		teamID, userID, role)
	if err != nil {
		if isDuplicate(err) {
			return model.TeamMembership{}, ErrConflict
		}
		return model.TeamMembership{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.TeamMembership{}, err
	}
	return r.getByID(ctx, uint64(id))
}

func (r *MembershipRepo) getByID(ctx context.Context, id uint64) (model.TeamMembership, error) {
	var m model.TeamMembership
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM team_memberships WHERE id = ?`, id).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return model.TeamMembership{}, ErrNotFound
	}
	return m, err
}

// Get returns the membership for a (team, user) pair.
func (r *MembershipRepo) Get(ctx context.Context, teamID, userID uint64) (model.TeamMembership, error) {
	var m model.TeamMembership
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM team_memberships WHERE team_id = ? AND user_id = ? LIMIT 1`,
		teamID, userID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return model.TeamMembership{}, ErrNotFound
	}
	return m, err
}

// HasRole reports whether the user holds one of the given roles on the team.
func (r *MembershipRepo) HasRole(ctx context.Context, teamID, userID uint64, roles ...string) (bool, error) {
	m, err := r.Get(ctx, teamID, userID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if m.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// ListByTeam returns all memberships of a team.
func (r *MembershipRepo) ListByTeam(ctx context.Context, teamID uint64) ([]model.TeamMembership, error) {
	return r.list(ctx, `SELECT `+membershipCols+` FROM team_memberships WHERE team_id = ? ORDER BY joined_at`, teamID)
}

// ListByUser returns all memberships of a user.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID uint64) ([]model.TeamMembership, error) {
	return r.list(ctx, `SELECT `+membershipCols+` FROM team_memberships WHERE user_id = ? ORDER BY joined_at`, userID)
}

func (r *MembershipRepo) list(ctx context.Context, q string, arg uint64) ([]model.TeamMembership, error) {
	rows, err := r.DB.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TeamMembership{}
	for rows.Next() {
		var m model.TeamMembership
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ownerCountQuery locks the team's owner rows while counting them, so two
// concurrent removals cannot both see a spare owner.
const ownerCountQuery = `SELECT COUNT(*) FROM team_memberships WHERE team_id = ? AND role = ? FOR UPDATE`

func ownerCountTx(ctx context.Context, tx *sql.Tx, teamID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, ownerCountQuery, teamID, model.RoleOwner).Scan(&n)
	return n, err
}

// UpdateRole overwrites a member's role. Demoting a team's last owner is
// rejected with ErrConflict: the team would be left ownerless through a side
// door that removal already guards.
func (r *MembershipRepo) UpdateRole(ctx context.Context, teamID, userID uint64, role string) (model.TeamMembership, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.TeamMembership{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var m model.TeamMembership
	err = tx.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM team_memberships WHERE team_id = ? AND user_id = ? FOR UPDATE`,
		teamID, userID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return model.TeamMembership{}, ErrNotFound
	}
	if err != nil {
		return model.TeamMembership{}, err
	}

	if m.Role == model.RoleOwner && role != model.RoleOwner {
		n, err := ownerCountTx(ctx, tx, teamID)
		if err != nil {
			return model.TeamMembership{}, err
		}
		if n <= 1 {
			return model.TeamMembership{}, ErrConflict
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE team_memberships SET role = ? WHERE id = ?`, role, m.ID); err != nil {
		return model.TeamMembership{}, err
	}
	m.Role = role
	if err := tx.Commit(); err != nil {
		return model.TeamMembership{}, err
	}
	return m, nil
}

// Remove deletes a membership. Removing the last owner is rejected with
// ErrConflict so a team can never end up ownerless.
func (r *MembershipRepo) Remove(ctx context.Context, teamID, userID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var m model.TeamMembership
	err = tx.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM team_memberships WHERE team_id = ? AND user_id = ? FOR UPDATE`,
		teamID, userID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if m.Role == model.RoleOwner {
		n, err := ownerCountTx(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrConflict
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM team_memberships WHERE id = ?`, m.ID); err != nil {
		return err
	}
	return tx.Commit()
}
