package repository

import (
	"context"
	"database/sql"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

// RantRepo persists rating submissions: rant groups with their landlord
// and apartment rating children, and standalone roommate ratings.
// A combined submission is written atomically by the service inside one
// transaction across the three insert methods; there is no rollup
// table, aggregation happens at read time.
type RantRepo struct{ db *sql.DB }

func NewRantRepo(db *sql.DB) *RantRepo { return &RantRepo{db: db} }

// CreateGroupTx inserts the rant group row and populates its id and
// timestamp.
func (r *RantRepo) CreateGroupTx(ctx context.Context, tx *sql.Tx, g *model.RantGroup) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO rant_groups (rater_id, landlord_id, place_id, period_label, is_current_residence, comment)
		 VALUES (?,?,?,?,?,?)`,
		g.RaterID, g.LandlordID, g.PlaceID, g.PeriodLabel, g.IsCurrentResidence, g.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM rant_groups WHERE id = ?", g.ID).Scan(&g.CreatedAt)
}

// CreateLandlordRatingTx inserts the landlord-rating child of a group.
func (r *RantRepo) CreateLandlordRatingTx(ctx context.Context, tx *sql.Tx, lr *model.LandlordRating) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO landlord_ratings (rant_group_id, fairness, responsiveness, maintenance, privacy_respect)
		 VALUES (?,?,?,?,?)`,
		lr.RantGroupID, lr.Fairness, lr.Responsiveness, lr.Maintenance, lr.PrivacyRespect)
	return err
}

// CreateApartmentRatingTx inserts the apartment-rating child of a group.
func (r *RantRepo) CreateApartmentRatingTx(ctx context.Context, tx *sql.Tx, ar *model.ApartmentRating) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO apartment_ratings
		 (rant_group_id, condition_score, location_score, value_score,
		  neighborhood_safety, neighborhood_noise, neighborhood_community)
		 VALUES (?,?,?,?,?,?,?)`,
		ar.RantGroupID, ar.Condition, ar.Location, ar.Value,
		ar.NeighborhoodSafety, ar.NeighborhoodNoise, ar.NeighborhoodCommunity)
	return err
}

// CreateRoommateRating inserts a standalone roommate rating.
func (r *RantRepo) CreateRoommateRating(ctx context.Context, rr *model.RoommateRating) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO roommate_ratings
		 (rater_id, target_user_id, target_hint, cleanliness, communication, reliability, respect, comment)
		 VALUES (?,?,?,?,?,?,?,?)`,
		rr.RaterID, rr.TargetUserID, rr.TargetHint,
		rr.Cleanliness, rr.Communication, rr.Reliability, rr.Respect, rr.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rr.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM roommate_ratings WHERE id = ?", rr.ID).Scan(&rr.CreatedAt)
}

// PlaceRant is one rant group for a place together with whichever
// rating children exist.  A group missing a child (partial data from an
// interrupted legacy writer) still carries the other one.
type PlaceRant struct {
	Group     model.RantGroup
	Landlord  *model.LandlordRating
	Apartment *model.ApartmentRating
}

// ListByPlace returns every rant group for a place, newest first, with
// its children left-joined in.
func (r *RantRepo) ListByPlace(ctx context.Context, placeID uint64) ([]PlaceRant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.rater_id, g.landlord_id, g.place_id, g.period_label,
		        g.is_current_residence, g.comment, g.created_at,
		        lr.fairness, lr.responsiveness, lr.maintenance, lr.privacy_respect,
		        ar.condition_score, ar.location_score, ar.value_score,
		        ar.neighborhood_safety, ar.neighborhood_noise, ar.neighborhood_community
		 FROM rant_groups g
		 LEFT JOIN landlord_ratings lr ON lr.rant_group_id = g.id
		 LEFT JOIN apartment_ratings ar ON ar.rant_group_id = g.id
		 WHERE g.place_id = ?
		 ORDER BY g.created_at DESC, g.id DESC`,
		placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PlaceRant
	for rows.Next() {
		var pr PlaceRant
		var comment sql.NullString
		var lf, lrsp, lm, lp sql.NullInt64
		var ac, al, av, ns, nn, ncm sql.NullInt64
		if err := rows.Scan(&pr.Group.ID, &pr.Group.RaterID, &pr.Group.LandlordID,
			&pr.Group.PlaceID, &pr.Group.PeriodLabel, &pr.Group.IsCurrentResidence,
			&comment, &pr.Group.CreatedAt,
			&lf, &lrsp, &lm, &lp,
			&ac, &al, &av, &ns, &nn, &ncm); err != nil {
			return nil, err
		}
		if comment.Valid {
			pr.Group.Comment = &comment.String
		}
		if lf.Valid {
			pr.Landlord = &model.LandlordRating{
				RantGroupID:    pr.Group.ID,
				Fairness:       uint8(lf.Int64),
				Responsiveness: uint8(lrsp.Int64),
				Maintenance:    uint8(lm.Int64),
				PrivacyRespect: uint8(lp.Int64),
			}
		}
		if ac.Valid {
			pr.Apartment = &model.ApartmentRating{
				RantGroupID:           pr.Group.ID,
				Condition:             uint8(ac.Int64),
				Location:              uint8(al.Int64),
				Value:                 uint8(av.Int64),
				NeighborhoodSafety:    uint8(ns.Int64),
				NeighborhoodNoise:     uint8(nn.Int64),
				NeighborhoodCommunity: uint8(ncm.Int64),
			}
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// ListRoommateRatingsForUser returns every roommate rating targeting
// the given user id.
func (r *RantRepo) ListRoommateRatingsForUser(ctx context.Context, userID uint64) ([]model.RoommateRating, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rater_id, target_user_id, target_hint, cleanliness, communication,
		        reliability, respect, comment, created_at
		 FROM roommate_ratings
		 WHERE target_user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.RoommateRating
	for rows.Next() {
		var rr model.RoommateRating
		var target sql.NullInt64
		var hint, comment sql.NullString
		if err := rows.Scan(&rr.ID, &rr.RaterID, &target, &hint,
			&rr.Cleanliness, &rr.Communication, &rr.Reliability, &rr.Respect,
			&comment, &rr.CreatedAt); err != nil {
			return nil, err
		}
		if target.Valid {
			id := uint64(target.Int64)
			rr.TargetUserID = &id
		}
		if hint.Valid {
			rr.TargetHint = &hint.String
		}
		if comment.Valid {
			rr.Comment = &comment.String
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
