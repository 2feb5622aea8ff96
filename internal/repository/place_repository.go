package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

// ErrPlaceNotFound is returned when a place cannot be found.
var ErrPlaceNotFound = errors.New("place not found")

// proximityDegrees is the half-width of the bounding box used to
// deduplicate places that arrive without an external id.  Roughly 30
// meters at mid latitudes, which is tighter than two distinct street
// addresses.
const proximityDegrees = 0.0003

// PlaceRepo provides access to the 'places' table.  Places are
// immutable once created; the only write path is the deduplicating
// GetOrCreate.
type PlaceRepo struct{ db *sql.DB }

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

const placeColumns = `id, external_id, address, city, lat, lng, created_at`

// GetByID returns a place by id, or ErrPlaceNotFound.
func (r *PlaceRepo) GetByID(ctx context.Context, id uint64) (*model.Place, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE id = ?", id)
	p, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaceNotFound
	}
	return p, err
}

// GetOrCreate resolves a submitted address to an existing place row or
// creates one.  Resolution order: exact external id match, then a
// coordinate-proximity match, then insert.  The external id column is
// unique, so two concurrent submissions of the same external id race
// down to one row: the loser's insert fails with a duplicate key and
// is retried as a lookup.  Proximity dedupe without an external id is
// best effort only.
func (r *PlaceRepo) GetOrCreate(ctx context.Context, p *model.Place) (*model.Place, error) {
	if p.ExternalID != nil {
		found, err := r.getByExternalID(ctx, *p.ExternalID)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	} else {
		found, err := r.findNear(ctx, p.Lat, p.Lng)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO places (external_id, address, city, lat, lng) VALUES (?,?,?,?,?)",
		p.ExternalID, p.Address, p.City, p.Lat, p.Lng)
	if err != nil {
		if isDuplicateKey(err) && p.ExternalID != nil {
			return r.getByExternalID(ctx, *p.ExternalID)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *PlaceRepo) getByExternalID(ctx context.Context, externalID string) (*model.Place, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE external_id = ? LIMIT 1", externalID)
	return scanPlace(row)
}

func (r *PlaceRepo) findNear(ctx context.Context, lat, lng float64) (*model.Place, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+placeColumns+` FROM places
		 WHERE lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?
		 ORDER BY (lat-?)*(lat-?) + (lng-?)*(lng-?) ASC
		 LIMIT 1`,
		lat-proximityDegrees, lat+proximityDegrees,
		lng-proximityDegrees, lng+proximityDegrees,
		lat, lat, lng, lng)
	return scanPlace(row)
}

func scanPlace(row rowScanner) (*model.Place, error) {
	var p model.Place
	var ext sql.NullString
	if err := row.Scan(&p.ID, &ext, &p.Address, &p.City, &p.Lat, &p.Lng, &p.CreatedAt); err != nil {
		return nil, err
	}
	if ext.Valid {
		p.ExternalID = &ext.String
	}
	return &p, nil
}
