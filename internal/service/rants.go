package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/SaharBarak/BeenThere-sub000/internal/identity"
	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// RantService accepts rating submissions.  A combined rant resolves the
// landlord from the raw phone number (which exists only inside the
// request), resolves or creates the place, and then writes the rant
// group with both rating children in one transaction — a failed child
// insert rolls the whole submission back, never leaving an orphaned
// group.
type RantService struct {
	DB               *sql.DB
	Users            *repository.UserRepo
	Places           *repository.PlaceRepo
	Landlords        *repository.LandlordRepo
	Rants            *repository.RantRepo
	Hasher           *identity.Hasher
	DefaultCountryCC string
}

func NewRantService(db *sql.DB, users *repository.UserRepo, places *repository.PlaceRepo,
	landlords *repository.LandlordRepo, rants *repository.RantRepo,
	hasher *identity.Hasher, defaultCountryCC string) *RantService {
	if db == nil || users == nil || places == nil || landlords == nil || rants == nil || hasher == nil {
		panic("nil dependency passed to NewRantService")
	}
	return &RantService{
		DB: db, Users: users, Places: places, Landlords: landlords, Rants: rants,
		Hasher: hasher, DefaultCountryCC: defaultCountryCC,
	}
}

// CombinedRantInput is one full submission: who the landlord is (by
// phone), where the apartment is, and both score sets.
type CombinedRantInput struct {
	RaterID            uint64
	LandlordPhone      string
	PlaceExternalID    *string
	PlaceAddress       string
	PlaceCity          string
	PlaceLat, PlaceLng float64
	PeriodLabel        string
	IsCurrentResidence bool
	Comment            *string
	Landlord           LandlordScores
	Apartment          ApartmentScores
}

// LandlordScores are the landlord sub-scores of a submission.
type LandlordScores struct {
	Fairness       uint8
	Responsiveness uint8
	Maintenance    uint8
	PrivacyRespect uint8
}

// ApartmentScores are the apartment and neighborhood sub-scores of a
// submission.
type ApartmentScores struct {
	Condition             uint8
	Location              uint8
	Value                 uint8
	NeighborhoodSafety    uint8
	NeighborhoodNoise     uint8
	NeighborhoodCommunity uint8
}

// RoommateRantInput rates a roommate, by account id or by free-text
// hint when the ratee has no account.  Exactly one of the two must be
// set.
type RoommateRantInput struct {
	RaterID       uint64
	TargetUserID  *uint64
	TargetHint    *string
	Cleanliness   uint8
	Communication uint8
	Reliability   uint8
	Respect       uint8
	Comment       *string
}

// SubmitCombined validates and persists a combined landlord+apartment
// rant.  Returns the created rant group.
func (s *RantService) SubmitCombined(ctx context.Context, in CombinedRantInput) (*model.RantGroup, error) {
	if err := s.validateCombined(&in); err != nil {
		return nil, err
	}

	// Normalize, hash, forget.  Only the hash travels further.
	e164, err := identity.NormalizePhone(in.LandlordPhone, s.DefaultCountryCC)
	if err != nil {
		return nil, invalid("landlordPhone", "not a recognizable phone number")
	}
	landlord, err := s.Landlords.GetOrCreateByHash(ctx, s.Hasher.Hash(e164))
	if err != nil {
		return nil, err
	}

	place, err := s.Places.GetOrCreate(ctx, &model.Place{
		ExternalID: in.PlaceExternalID,
		Address:    in.PlaceAddress,
		City:       in.PlaceCity,
		Lat:        in.PlaceLat,
		Lng:        in.PlaceLng,
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	group := &model.RantGroup{
		RaterID:            in.RaterID,
		LandlordID:         landlord.ID,
		PlaceID:            place.ID,
		PeriodLabel:        strings.TrimSpace(in.PeriodLabel),
		IsCurrentResidence: in.IsCurrentResidence,
		Comment:            in.Comment,
	}
	if err := s.Rants.CreateGroupTx(ctx, tx, group); err != nil {
		return nil, err
	}
	if err := s.Rants.CreateLandlordRatingTx(ctx, tx, &model.LandlordRating{
		RantGroupID:    group.ID,
		Fairness:       in.Landlord.Fairness,
		Responsiveness: in.Landlord.Responsiveness,
		Maintenance:    in.Landlord.Maintenance,
		PrivacyRespect: in.Landlord.PrivacyRespect,
	}); err != nil {
		return nil, err
	}
	if err := s.Rants.CreateApartmentRatingTx(ctx, tx, &model.ApartmentRating{
		RantGroupID:           group.ID,
		Condition:             in.Apartment.Condition,
		Location:              in.Apartment.Location,
		Value:                 in.Apartment.Value,
		NeighborhoodSafety:    in.Apartment.NeighborhoodSafety,
		NeighborhoodNoise:     in.Apartment.NeighborhoodNoise,
		NeighborhoodCommunity: in.Apartment.NeighborhoodCommunity,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return group, nil
}

// SubmitRoommate validates and persists a roommate rating.
func (s *RantService) SubmitRoommate(ctx context.Context, in RoommateRantInput) (*model.RoommateRating, error) {
	if err := validateRoommate(&in); err != nil {
		return nil, err
	}
	if in.TargetUserID != nil {
		if _, err := s.Users.GetByID(ctx, *in.TargetUserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	rating := &model.RoommateRating{
		RaterID:       in.RaterID,
		TargetUserID:  in.TargetUserID,
		TargetHint:    in.TargetHint,
		Cleanliness:   in.Cleanliness,
		Communication: in.Communication,
		Reliability:   in.Reliability,
		Respect:       in.Respect,
		Comment:       in.Comment,
	}
	if err := s.Rants.CreateRoommateRating(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RantService) validateCombined(in *CombinedRantInput) error {
	if strings.TrimSpace(in.LandlordPhone) == "" {
		return invalid("landlordPhone", "required")
	}
	if in.PlaceExternalID == nil {
		if strings.TrimSpace(in.PlaceAddress) == "" {
			return invalid("placeAddress", "required without an external place id")
		}
		if in.PlaceLat == 0 && in.PlaceLng == 0 {
			return invalid("placeLat", "coordinates required without an external place id")
		}
	}
	if strings.TrimSpace(in.PeriodLabel) == "" {
		return invalid("period", "required")
	}
	if err := validateComment("comment", in.Comment); err != nil {
		return err
	}
	scores := map[string]uint8{
		"landlord.fairness":               in.Landlord.Fairness,
		"landlord.responsiveness":         in.Landlord.Responsiveness,
		"landlord.maintenance":            in.Landlord.Maintenance,
		"landlord.privacyRespect":         in.Landlord.PrivacyRespect,
		"apartment.condition":             in.Apartment.Condition,
		"apartment.location":              in.Apartment.Location,
		"apartment.value":                 in.Apartment.Value,
		"apartment.neighborhoodSafety":    in.Apartment.NeighborhoodSafety,
		"apartment.neighborhoodNoise":     in.Apartment.NeighborhoodNoise,
		"apartment.neighborhoodCommunity": in.Apartment.NeighborhoodCommunity,
	}
	return validateScores(scores)
}

func validateRoommate(in *RoommateRantInput) error {
	hasTarget := in.TargetUserID != nil
	hasHint := in.TargetHint != nil && strings.TrimSpace(*in.TargetHint) != ""
	if hasTarget == hasHint {
		return invalid("target", "exactly one of targetUserId and targetHint must be set")
	}
	if hasTarget && *in.TargetUserID == in.RaterID {
		return invalid("targetUserId", "cannot rate yourself")
	}
	if err := validateComment("comment", in.Comment); err != nil {
		return err
	}
	return validateScores(map[string]uint8{
		"cleanliness":   in.Cleanliness,
		"communication": in.Communication,
		"reliability":   in.Reliability,
		"respect":       in.Respect,
	})
}

func validateScores(scores map[string]uint8) error {
	for field, v := range scores {
		if v < model.ScoreMin || v > model.ScoreMax {
			return invalid(field, "score must be between 1 and 10")
		}
	}
	return nil
}

func validateComment(field string, comment *string) error {
	if comment != nil && len(*comment) > model.MaxCommentLen {
		return invalid(field, "must be at most 300 characters")
	}
	return nil
}
