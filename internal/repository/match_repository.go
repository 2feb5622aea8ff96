package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
)

// ErrMatchNotFound is returned when a match cannot be found.
var ErrMatchNotFound = errors.New("match not found")

// MatchRepo provides access to the 'matches' table.  Creation is
// idempotent by construction: every create attempts the insert first
// and resolves a duplicate-key loss by re-reading the existing row, so
// re-deciding an already-matched pair hands back the same match id no
// matter which side or how many callers raced.
type MatchRepo struct{ db *sql.DB }

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

const matchColumns = `id, kind, listing_id, user_a_id, user_b_id, created_at`

// canonicalPair orders two user ids ascending.  Peer matches are stored
// in this canonical order so the unique index and every lookup hit the
// same row regardless of which direction the check arrives from.
func canonicalPair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

// CreateListingMatchTx creates (or finds) the match between a seeker
// and a listing.  The second return value reports whether a new row was
// created by this call, letting callers publish creation events exactly
// once.
func (r *MatchRepo) CreateListingMatchTx(ctx context.Context, tx *sql.Tx, listingID, seekerID, ownerID uint64) (*model.Match, bool, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO matches (kind, listing_id, user_a_id, user_b_id) VALUES (?,?,?,?)",
		model.MatchKindListing, listingID, seekerID, ownerID)
	if err != nil {
		if isDuplicateKey(err) {
			m, err := r.getListingMatchTx(ctx, tx, listingID, seekerID)
			return m, false, err
		}
		return nil, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	m, err := r.getByIDTx(ctx, tx, uint64(id))
	return m, true, err
}

// CreatePeerMatchTx creates (or finds) the match between two users.
func (r *MatchRepo) CreatePeerMatchTx(ctx context.Context, tx *sql.Tx, userA, userB uint64) (*model.Match, bool, error) {
	a, b := canonicalPair(userA, userB)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO matches (kind, listing_id, user_a_id, user_b_id) VALUES (?,NULL,?,?)",
		model.MatchKindPeer, a, b)
	if err != nil {
		if isDuplicateKey(err) {
			m, err := r.getPeerMatchTx(ctx, tx, a, b)
			return m, false, err
		}
		return nil, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	m, err := r.getByIDTx(ctx, tx, uint64(id))
	return m, true, err
}

// GetByID returns a match by id, or ErrMatchNotFound.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE id = ?", id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// ListForUser returns a page of the user's matches of both kinds,
// newest first with the shared keyset boundary.
func (r *MatchRepo) ListForUser(ctx context.Context, userID uint64, before *pagination.Key, limit int) ([]model.Match, error) {
	q := `SELECT ` + matchColumns + ` FROM matches
	      WHERE (user_a_id = ? OR user_b_id = ?)`
	args := []any{userID, userID}
	if before != nil {
		q += ` AND (created_at < ? OR (created_at = ? AND id < ?))`
		args = append(args, before.CreatedAt, before.CreatedAt, before.ID)
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MatchRepo) getByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Match, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE id = ?", id)
	return scanMatch(row)
}

func (r *MatchRepo) getListingMatchTx(ctx context.Context, tx *sql.Tx, listingID, seekerID uint64) (*model.Match, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE kind = ? AND listing_id = ? AND user_a_id = ? LIMIT 1",
		model.MatchKindListing, listingID, seekerID)
	return scanMatch(row)
}

func (r *MatchRepo) getPeerMatchTx(ctx context.Context, tx *sql.Tx, a, b uint64) (*model.Match, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE kind = ? AND user_a_id = ? AND user_b_id = ? LIMIT 1",
		model.MatchKindPeer, a, b)
	return scanMatch(row)
}

func scanMatch(row rowScanner) (*model.Match, error) {
	var m model.Match
	var listingID sql.NullInt64
	if err := row.Scan(&m.ID, &m.Kind, &listingID, &m.UserAID, &m.UserBID, &m.CreatedAt); err != nil {
		return nil, err
	}
	if listingID.Valid {
		id := uint64(listingID.Int64)
		m.ListingID = &id
	}
	return &m, nil
}
