package repository

import (
	"context"
	"database/sql"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

// LandlordRepo provides access to the 'landlords' table.  The table's
// only business column is the unique phone hash; no phone digits ever
// reach this layer.
type LandlordRepo struct{ db *sql.DB }

func NewLandlordRepo(db *sql.DB) *LandlordRepo { return &LandlordRepo{db: db} }

// GetOrCreateByHash returns the landlord row for a phone hash, creating
// it on first sight.  The insert-then-reread pattern makes the
// operation race-safe: when two concurrent rant submissions resolve the
// same new landlord, the unique index on phone_hash rejects one insert
// and that caller falls back to reading the winner's row.
func (r *LandlordRepo) GetOrCreateByHash(ctx context.Context, phoneHash string) (*model.Landlord, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO landlords (phone_hash) VALUES (?)", phoneHash)
	if err != nil {
		if isDuplicateKey(err) {
			return r.getByHash(ctx, phoneHash)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, uint64(id))
}

func (r *LandlordRepo) getByID(ctx context.Context, id uint64) (*model.Landlord, error) {
	var l model.Landlord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, phone_hash, created_at FROM landlords WHERE id = ?", id).
		Scan(&l.ID, &l.PhoneHash, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LandlordRepo) getByHash(ctx context.Context, phoneHash string) (*model.Landlord, error) {
	var l model.Landlord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, phone_hash, created_at FROM landlords WHERE phone_hash = ? LIMIT 1", phoneHash).
		Scan(&l.ID, &l.PhoneHash, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
