package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

// SwipeRepo appends to and reads the two swipe ledgers
// (listing_swipes and user_swipes).  Both tables carry a unique index
// on their (actor, target) pair, which is what actually enforces the
// at-most-one-swipe invariant; the repository only translates the
// resulting duplicate-key error.  Swipes are never updated or deleted.
type SwipeRepo struct{ db *sql.DB }

func NewSwipeRepo(db *sql.DB) *SwipeRepo { return &SwipeRepo{db: db} }

// InsertListingSwipeTx appends one listing swipe within a transaction
// and populates the generated id and timestamp.  A second swipe by the
// same actor on the same listing returns ErrDuplicate, regardless of
// how the two requests interleaved.
func (r *SwipeRepo) InsertListingSwipeTx(ctx context.Context, tx *sql.Tx, s *model.ListingSwipe) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO listing_swipes (actor_id, listing_id, action) VALUES (?,?,?)",
		s.ActorID, s.ListingID, s.Action)
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
	s.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM listing_swipes WHERE id = ?", s.ID).Scan(&s.CreatedAt)
}

// InsertUserSwipeTx appends one user-on-user swipe within a
// transaction, with the same duplicate semantics as listing swipes.
func (r *SwipeRepo) InsertUserSwipeTx(ctx context.Context, tx *sql.Tx, s *model.UserSwipe) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_swipes (actor_id, target_id, action) VALUES (?,?,?)",
		s.ActorID, s.TargetID, s.Action)
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
	s.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM user_swipes WHERE id = ?", s.ID).Scan(&s.CreatedAt)
}

// GetUserSwipeTx returns the swipe by actor on target, or nil when the
// actor has not swiped that target yet.
func (r *SwipeRepo) GetUserSwipeTx(ctx context.Context, tx *sql.Tx, actorID, targetID uint64) (*model.UserSwipe, error) {
	var s model.UserSwipe
	err := tx.QueryRowContext(ctx,
		`SELECT id, actor_id, target_id, action, created_at
		 FROM user_swipes WHERE actor_id = ? AND target_id = ? LIMIT 1`,
		actorID, targetID).
		Scan(&s.ID, &s.ActorID, &s.TargetID, &s.Action, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetListingSwipeTx returns the swipe by actor on a listing, or nil.
func (r *SwipeRepo) GetListingSwipeTx(ctx context.Context, tx *sql.Tx, actorID, listingID uint64) (*model.ListingSwipe, error) {
	var s model.ListingSwipe
	err := tx.QueryRowContext(ctx,
		`SELECT id, actor_id, listing_id, action, created_at
		 FROM listing_swipes WHERE actor_id = ? AND listing_id = ? LIMIT 1`,
		actorID, listingID).
		Scan(&s.ID, &s.ActorID, &s.ListingID, &s.Action, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListPendingLikedListingsTx returns the active whole-apartment
// listings owned by ownerID that seekerID has liked and that have no
// match yet.  This is the owner-side half of the whole-apartment rule:
// when an owner likes a seeker, every such listing match-fires.
func (r *SwipeRepo) ListPendingLikedListingsTx(ctx context.Context, tx *sql.Tx, ownerID, seekerID uint64) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT l.id
		 FROM listings l
		 JOIN listing_swipes s ON s.listing_id = l.id
		 WHERE l.owner_id = ?
		   AND l.kind = ?
		   AND l.is_active = 1
		   AND s.actor_id = ?
		   AND s.action = ?
		   AND NOT EXISTS (
		         SELECT 1 FROM matches m
		         WHERE m.kind = ? AND m.listing_id = l.id AND m.user_a_id = s.actor_id)`,
		ownerID, model.KindWholeApartment, seekerID, model.ActionLike, model.MatchKindListing)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
