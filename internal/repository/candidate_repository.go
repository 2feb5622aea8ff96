package repository

import (
	"context"
	"database/sql"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
)

// CandidateRow is one entry of a shared-room listing's review queue:
// the seeker's profile joined with their like.  The swipe's
// (created_at, id) is the keyset position within the queue.
type CandidateRow struct {
	User     model.User
	SwipedAt pagination.Key
}

// CandidateRepo reads the candidate queue and records admin decisions.
// The queue itself is derived: every LIKE in listing_swipes that has no
// row in candidate_decisions.  The decision row is the exclusion key,
// so a decided candidate disappears from subsequent pages even though
// the original swipe stays in the ledger forever.
type CandidateRepo struct{ db *sql.DB }

func NewCandidateRepo(db *sql.DB) *CandidateRepo { return &CandidateRepo{db: db} }

// List returns a page of undecided candidates for a listing, newest
// swipe first with the shared keyset boundary.
func (r *CandidateRepo) List(ctx context.Context, listingID uint64, before *pagination.Key, limit int) ([]CandidateRow, error) {
	q := `SELECT ` + prefixColumns("u", userColumns) + `, s.id, s.created_at
	      FROM listing_swipes s
	      JOIN users u ON u.id = s.actor_id
	      WHERE s.listing_id = ?
	        AND s.action = ?
	        AND NOT EXISTS (
	              SELECT 1 FROM candidate_decisions d
	              WHERE d.listing_id = s.listing_id AND d.candidate_id = s.actor_id)`
	args := []any{listingID, model.ActionLike}
	if before != nil {
		q += ` AND (s.created_at < ? OR (s.created_at = ? AND s.id < ?))`
		args = append(args, before.CreatedAt, before.CreatedAt, before.ID)
	}
	q += ` ORDER BY s.created_at DESC, s.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CandidateRow, 0, limit)
	for rows.Next() {
		var c CandidateRow
		var photo, bio, about sql.NullString
		if err := rows.Scan(&c.User.ID, &c.User.Email, &c.User.PasswordHash, &c.User.Role,
			&c.User.DisplayName, &photo, &bio, &about, &c.User.IsActive,
			&c.User.CreatedAt, &c.User.UpdatedAt,
			&c.SwipedAt.ID, &c.SwipedAt.CreatedAt); err != nil {
			return nil, err
		}
		if photo.Valid {
			c.User.PhotoURL = &photo.String
		}
		if bio.Valid {
			c.User.Bio = &bio.String
		}
		if about.Valid {
			c.User.About = &about.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// HasLikedTx reports whether the candidate actually liked the listing,
// inside the decision transaction.
func (r *CandidateRepo) HasLikedTx(ctx context.Context, tx *sql.Tx, listingID, candidateID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM listing_swipes WHERE listing_id = ? AND actor_id = ? AND action = ? LIMIT 1",
		listingID, candidateID, model.ActionLike).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertDecisionTx records an admin decision.  (listing_id,
// candidate_id) is unique, so a concurrent second decision on the same
// candidate comes back as ErrDuplicate and the queue treats the first
// one as terminal.
func (r *CandidateRepo) InsertDecisionTx(ctx context.Context, tx *sql.Tx, d *model.CandidateDecision) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO candidate_decisions (listing_id, candidate_id, decision, decided_by) VALUES (?,?,?,?)",
		d.ListingID, d.CandidateID, d.Decision, d.DecidedBy)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM candidate_decisions WHERE id = ?", d.ID).Scan(&d.CreatedAt)
}
