package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
)

// ErrListingNotFound is returned when a listing cannot be found.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepo provides access to the 'listings' table.  The
// spots_available counter is mutated only through the conditional
// single-statement updates below, so concurrent member churn can never
// drive it negative or above capacity.
type ListingRepo struct{ db *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying pool so services can open transactions that
// span several repositories.
func (r *ListingRepo) DB() *sql.DB { return r.db }

const listingColumns = `id, owner_id, place_id, kind, title, description, price_cents, auto_accept, capacity_total, spots_available, is_active, created_at, updated_at`

// CreateTx inserts a listing inside an existing transaction and
// populates the generated id and timestamps on the provided record.
// The caller owns the transaction; listing creation shares it with the
// seeding of the owner membership row for shared-room listings.
func (r *ListingRepo) CreateTx(ctx context.Context, tx *sql.Tx, l *model.Listing) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO listings
		 (owner_id, place_id, kind, title, description, price_cents, auto_accept, capacity_total, spots_available)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		l.OwnerID, l.PlaceID, l.Kind, l.Title, l.Description, l.PriceCents,
		l.AutoAccept, l.CapacityTotal, l.SpotsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	row := tx.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = ?", l.ID)
	got, err := scanListing(row)
	if err != nil {
		return err
	}
	*l = *got
	return nil
}

// GetByID returns a listing by id, or ErrListingNotFound.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	return l, err
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *ListingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Listing, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	return l, err
}

// Deactivate hides a listing from feeds.  Only the owner may do so;
// a non-owner caller gets ErrForbidden, a missing listing
// ErrListingNotFound.
func (r *ListingRepo) Deactivate(ctx context.Context, id, ownerID uint64) error {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM listings WHERE id = ?", id).Scan(&actualOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrListingNotFound
	}
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE listings SET is_active = 0 WHERE id = ?", id)
	return err
}

// ListByOwner returns all listings of one owner, newest first.
func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE owner_id = ? ORDER BY created_at DESC, id DESC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// FeedFilters narrows the listing feed.  Zero values mean "no filter";
// they are folded into the single range-scan query rather than being
// separate repository methods per filter combination.
type FeedFilters struct {
	Kind          string // WHOLE_APARTMENT, SHARED_ROOM or empty
	MinPriceCents uint32
	MaxPriceCents uint32
	City          string
}

// ListFeed returns a page of active listings for a seeker's feed,
// excluding the seeker's own listings and every listing they already
// swiped.  Descending (created_at, id) order with an optional keyset
// boundary, per the shared pagination contract.
func (r *ListingRepo) ListFeed(ctx context.Context, viewerID uint64, f FeedFilters, before *pagination.Key, limit int) ([]model.Listing, error) {
	q := `SELECT ` + prefixColumns("l", listingColumns) + `
	      FROM listings l
	      WHERE l.is_active = 1
	        AND l.owner_id <> ?
	        AND NOT EXISTS (
	              SELECT 1 FROM listing_swipes s
	              WHERE s.actor_id = ? AND s.listing_id = l.id)`
	args := []any{viewerID, viewerID}
	if f.Kind != "" {
		q += ` AND l.kind = ?`
		args = append(args, f.Kind)
	}
	if f.MinPriceCents > 0 {
		q += ` AND l.price_cents >= ?`
		args = append(args, f.MinPriceCents)
	}
	if f.MaxPriceCents > 0 {
		q += ` AND l.price_cents <= ?`
		args = append(args, f.MaxPriceCents)
	}
	if f.City != "" {
		q += ` AND EXISTS (SELECT 1 FROM places p WHERE p.id = l.place_id AND p.city = ?)`
		args = append(args, f.City)
	}
	if before != nil {
		q += ` AND (l.created_at < ? OR (l.created_at = ? AND l.id < ?))`
		args = append(args, before.CreatedAt, before.CreatedAt, before.ID)
	}
	q += ` ORDER BY l.created_at DESC, l.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Listing, 0, limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// ConsumeSpotTx decrements spots_available by one if it is positive.
// The condition lives inside the UPDATE itself, so concurrent adds
// cannot race the counter below zero; when no spot is left the
// statement simply affects zero rows and the counter stays put.
func (r *ListingRepo) ConsumeSpotTx(ctx context.Context, tx *sql.Tx, listingID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE listings SET spots_available = spots_available - 1 WHERE id = ? AND spots_available > 0",
		listingID)
	return err
}

// ReleaseSpotTx increments spots_available by one, capped at
// capacity_total by the same single-statement pattern.
func (r *ListingRepo) ReleaseSpotTx(ctx context.Context, tx *sql.Tx, listingID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE listings SET spots_available = spots_available + 1 WHERE id = ? AND spots_available < capacity_total",
		listingID)
	return err
}

func scanListing(row rowScanner) (*model.Listing, error) {
	var l model.Listing
	var desc sql.NullString
	if err := row.Scan(&l.ID, &l.OwnerID, &l.PlaceID, &l.Kind, &l.Title, &desc,
		&l.PriceCents, &l.AutoAccept, &l.CapacityTotal, &l.SpotsAvailable,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		l.Description = &desc.String
	}
	return &l, nil
}
