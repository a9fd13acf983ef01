package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kitlog/kitlog-api/internal/model"
)

type TeamRepo struct{ DB *sql.DB }

func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{DB: db} }

const teamCols = `id, name, description, subscription_tier, status, created_at, updated_at`

// TeamUpdate carries a partial team update; nil fields are left untouched.
type TeamUpdate struct {
	Name             *string
	Description      *string
	SubscriptionTier *string
}

// Create inserts the team and the creator's owner membership in one
// transaction. A committed team without an owner must never be observable,
// so any failure rolls both rows back.
func (r *TeamRepo) Create(ctx context.Context, t *model.Team, creatorID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO teams (name, description, subscription_tier) VALUES (?, ?, ?)`,
		t.Name, t.Description, t.SubscriptionTier)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO team_memberships (team_id, user_id, role) VALUES (?, ?, ?)`,
		t.ID, creatorID, model.RoleOwner); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT `+teamCols+` FROM teams WHERE id = ?`, t.ID).Scan(
		&t.ID, &t.Name, &t.Description, &t.SubscriptionTier, &t.Status,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID returns an active team; archived teams behave as not found.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (model.Team, error) {
	var t model.Team
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+teamCols+` FROM teams WHERE id = ? AND status = ? LIMIT 1`,
		id, model.TeamActive).Scan(
		&t.ID, &t.Name, &t.Description, &t.SubscriptionTier, &t.Status,
		&t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Team{}, ErrNotFound
	}
	return t, err
}

// List returns all active teams.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+teamCols+` FROM teams WHERE status = ? ORDER BY id`, model.TeamActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

// ListByUser returns the active teams a user is a member of.
func (r *TeamRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Team, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.subscription_tier, t.status, t.created_at, t.updated_at
		 FROM teams t
		 JOIN team_memberships m ON m.team_id = t.id
		 WHERE m.user_id = ? AND t.status = ?
		 ORDER BY t.id`, userID, model.TeamActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

func collectTeams(rows *sql.Rows) ([]model.Team, error) {
	out := []model.Team{}
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.SubscriptionTier,
			&t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update merges the supplied fields into an active team and returns the
// updated row.
func (r *TeamRepo) Update(ctx context.Context, id uint64, upd TeamUpdate) (model.Team, error) {
	sets := []string{}
	args := []interface{}{}
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.SubscriptionTier != nil {
		sets = append(sets, "subscription_tier = ?")
		args = append(args, *upd.SubscriptionTier)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = UTC_TIMESTAMP()")
		args = append(args, id, model.TeamActive)
		res, err := r.DB.ExecContext(ctx,
			`UPDATE teams SET `+strings.Join(sets, ", ")+` WHERE id = ? AND status = ?`,
			args...)
		if err != nil {
			return model.Team{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := r.GetByID(ctx, id); err != nil {
				return model.Team{}, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

// Archive soft-deletes a team. History (memberships, equipment references)
// is preserved; the team simply stops being readable.
func (r *TeamRepo) Archive(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE teams SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?`,
		model.TeamArchived, id, model.TeamActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
