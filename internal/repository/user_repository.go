package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/utils"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = `id, email, password_hash, role, display_name, photo_url, bio, about, is_active, created_at, updated_at`

// Create inserts a user and returns its ID.  The email carries a
// unique index; a duplicate surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role, displayName string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, display_name) VALUES (?,?,?,?)",
		email, hash, role, displayName)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail returns the user with the given email or sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email)
	return scanUser(row)
}

// GetByID returns the user with the given id or sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
	return scanUser(row)
}

// UpdateProfile writes the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, displayName string, photoURL, bio, about *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET display_name=?, photo_url=?, bio=?, about=? WHERE id=?",
		displayName, photoURL, bio, about, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSeekerFeed returns a page of active seekers for the roommate
// feed, excluding the viewer and every user the viewer has already
// swiped.  Rows come back in descending (created_at, id) order; when
// before is non-nil only rows strictly after that boundary are
// returned, which is the range-scan half of the keyset pagination
// contract.
func (r *UserRepo) ListSeekerFeed(ctx context.Context, viewerID uint64, before *pagination.Key, limit int) ([]model.User, error) {
	q := `SELECT ` + prefixColumns("u", userColumns) + `
	      FROM users u
	      WHERE u.is_active = 1
	        AND u.role = ?
	        AND u.id <> ?
	        AND NOT EXISTS (
	              SELECT 1 FROM user_swipes s
	              WHERE s.actor_id = ? AND s.target_id = u.id)`
	args := []any{model.RoleSeeker, viewerID, viewerID}
	if before != nil {
		q += ` AND (u.created_at < ? OR (u.created_at = ? AND u.id < ?))`
		args = append(args, before.CreatedAt, before.CreatedAt, before.ID)
	}
	q += ` ORDER BY u.created_at DESC, u.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0, limit)
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// prefixColumns qualifies a comma-separated column list with a table
// alias for use in joined queries.
func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

type rowScanner interface{ Scan(dest ...any) error }

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var photo, bio, about sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.DisplayName,
		&photo, &bio, &about, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if photo.Valid {
		u.PhotoURL = &photo.String
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	if about.Valid {
		u.About = &about.String
	}
	return &u, nil
}

func scanUserRows(rows *sql.Rows) (*model.User, error) { return scanUser(rows) }
