package repository

import (
	"context"
	"database/sql"

	"github.com/kitlog/kitlog-api/internal/model"
)

type SignupRepo struct{ DB *sql.DB }

func NewSignupRepo(db *sql.DB) *SignupRepo { return &SignupRepo{DB: db} }

// Create inserts a marketing signup. A duplicate email is ErrConflict.
func (r *SignupRepo) Create(ctx context.Context, s *model.EmailSignup) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO email_signups (name, email, source) VALUES (?, ?, ?)`,
		s.Name, s.Email, s.Source)
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
	return r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, source, created_at FROM email_signups WHERE id = ?`,
		id).Scan(&s.ID, &s.Name, &s.Email, &s.Source, &s.CreatedAt)
}

// List returns signups ordered by creation with offset paging.
func (r *SignupRepo) List(ctx context.Context, skip, limit int) ([]model.EmailSignup, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, email, source, created_at FROM email_signups
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EmailSignup{}
	for rows.Next() {
		var s model.EmailSignup
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Count returns the total number of signups.
func (r *SignupRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_signups`).Scan(&n)
	return n, err
}
