package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

// ErrMemberNotFound is returned when no current membership row exists
// for the requested (listing, user) pair.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepo provides access to the 'listing_members' table.  Rows are
// never deleted: leaving flips is_current and stamps left_at, so the
// table doubles as the listing's occupancy history.
type MemberRepo struct{ db *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

const memberColumns = `id, listing_id, user_id, role, is_current, display_order, joined_at, left_at`

// InsertTx adds a current membership row inside a transaction.  The
// caller is responsible for having checked, inside the same
// transaction, that the user has no current row for this listing.
func (r *MemberRepo) InsertTx(ctx context.Context, tx *sql.Tx, m *model.ListingMember) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO listing_members (listing_id, user_id, role, is_current, display_order)
		 VALUES (?,?,?,1,?)`,
		m.ListingID, m.UserID, m.Role, m.DisplayOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.IsCurrent = true
	return tx.QueryRowContext(ctx,
		"SELECT joined_at FROM listing_members WHERE id = ?", m.ID).Scan(&m.JoinedAt)
}

// CurrentMemberTx returns the user's current membership row for a
// listing, locking it for the duration of the transaction, or
// ErrMemberNotFound.
func (r *MemberRepo) CurrentMemberTx(ctx context.Context, tx *sql.Tx, listingID, userID uint64) (*model.ListingMember, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM listing_members
		 WHERE listing_id = ? AND user_id = ? AND is_current = 1
		 LIMIT 1 FOR UPDATE`,
		listingID, userID)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

// CurrentMember is the plain-read variant of CurrentMemberTx, used for
// admin checks on read-only paths.
func (r *MemberRepo) CurrentMember(ctx context.Context, listingID, userID uint64) (*model.ListingMember, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM listing_members
		 WHERE listing_id = ? AND user_id = ? AND is_current = 1
		 LIMIT 1`,
		listingID, userID)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

// ListCurrent returns the current members of a listing ordered by
// display_order then joined_at, both ascending.  A pure read: stable,
// finite and restartable.
func (r *MemberRepo) ListCurrent(ctx context.Context, listingID uint64) ([]model.ListingMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM listing_members
		 WHERE listing_id = ? AND is_current = 1
		 ORDER BY display_order ASC, joined_at ASC, id ASC`,
		listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ListingMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// MarkLeftTx retires a membership row: is_current drops to false and
// left_at is stamped.  The history row remains.
func (r *MemberRepo) MarkLeftTx(ctx context.Context, tx *sql.Tx, memberID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE listing_members SET is_current = 0, left_at = NOW() WHERE id = ? AND is_current = 1",
		memberID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// CountCurrentByRoleTx counts the listing's current members holding a
// role, inside a transaction.  Used to reject removing the sole OWNER.
func (r *MemberRepo) CountCurrentByRoleTx(ctx context.Context, tx *sql.Tx, listingID uint64, role string) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM listing_members WHERE listing_id = ? AND role = ? AND is_current = 1",
		listingID, role).Scan(&n)
	return n, err
}

func scanMember(row rowScanner) (*model.ListingMember, error) {
	var m model.ListingMember
	var leftAt sql.NullTime
	if err := row.Scan(&m.ID, &m.ListingID, &m.UserID, &m.Role, &m.IsCurrent,
		&m.DisplayOrder, &m.JoinedAt, &leftAt); err != nil {
		return nil, err
	}
	if leftAt.Valid {
		t := leftAt.Time
		m.LeftAt = &t
	}
	return &m, nil
}
