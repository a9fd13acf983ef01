package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kitlog/kitlog-api/internal/auth"
	"github.com/kitlog/kitlog-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrMissingSubject is returned when an identity provider profile carries no
// subject id. Handlers map it to a validation failure.
var ErrMissingSubject = errors.New("profile subject is required")

const userCols = `id, subject, email, name, picture, email_verified, display_name, bio,
	is_active, is_admin, has_completed_onboarding, last_login, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.Picture, &u.EmailVerified,
		&u.DisplayName, &u.Bio, &u.IsActive, &u.IsAdmin, &u.Onboarded,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Sync reconciles an identity provider profile with the local users table.
// A first-time subject gets a fresh row with onboarding incomplete; a known
// subject has its mutable profile fields and last_login overwritten. The
// upsert is keyed on the subject's unique index, so concurrent first logins
// of the same subject cannot create two rows. Re-syncing identical data is a
// no-op overwrite.
func (r *UserRepo) Sync(ctx context.Context, p auth.Profile) (model.User, error) {
	if strings.TrimSpace(p.Subject) == "" {
		return model.User{}, ErrMissingSubject
	}
	const q = `INSERT INTO users (subject, email, name, picture, email_verified, last_login)
		VALUES (?, ?, ?, ?, ?, UTC_TIMESTAMP())
		ON DUPLICATE KEY UPDATE
			email = VALUES(email),
			name = VALUES(name),
			picture = VALUES(picture),
			email_verified = VALUES(email_verified),
			last_login = VALUES(last_login)`
	var pic interface{}
	if p.Picture != "" {
		pic = p.Picture
	}
	if _, err := r.DB.ExecContext(ctx, q,
		p.Subject, strings.ToLower(strings.TrimSpace(p.Email)), p.Name, pic, p.EmailVerified); err != nil {
		return model.User{}, fmt.Errorf("sync user: %w", err)
	}
	return r.GetBySubject(ctx, p.Subject)
}

// GetBySubject fetches a user by identity provider subject id.
func (r *UserRepo) GetBySubject(ctx context.Context, subject string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE subject = ? LIMIT 1`, subject))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns users ordered by id with simple offset paging.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userCols+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.Picture, &u.EmailVerified,
			&u.DisplayName, &u.Bio, &u.IsActive, &u.IsAdmin, &u.Onboarded,
			&u.LastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// MarkOnboarded flips the onboarding flag for a user.
func (r *UserRepo) MarkOnboarded(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET has_completed_onboarding = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean the flag was already set; treat a missing
		// row as the only failure.
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}
