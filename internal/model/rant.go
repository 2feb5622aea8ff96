package model

import "time"

// Score bounds shared by every rating sub-score.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// MaxCommentLen bounds free-text comments on rants and ratings.
const MaxCommentLen = 300

// RantGroup is one combined rating submission session, a row in
// `rant_groups`.  It ties a rater, an anonymous landlord and a place
// together and owns exactly one landlord-rating and one
// apartment-rating child row.
//
// Fields:
//  ID                 – primary key identifier.
//  RaterID            – user who submitted the rant.
//  LandlordID         – anonymous landlord being rated.
//  PlaceID            – apartment address being rated.
//  PeriodLabel        – free-form residence period ("2023-2024").
//  IsCurrentResidence – whether the rater still lives there.
//  Comment            – overall free-text comment (nullable).
//  CreatedAt          – submission timestamp.
type RantGroup struct {
	ID                 uint64    // rant_groups.id
	RaterID            uint64    // rant_groups.rater_id
	LandlordID         uint64    // rant_groups.landlord_id
	PlaceID            uint64    // rant_groups.place_id
	PeriodLabel        string    // rant_groups.period_label
	IsCurrentResidence bool      // rant_groups.is_current_residence
	Comment            *string   // rant_groups.comment (nullable)
	CreatedAt          time.Time // rant_groups.created_at
}

// LandlordRating holds the landlord sub-scores of one rant group, a row
// in `landlord_ratings` keyed by the owning rant group.  All sub-scores
// are integers in [ScoreMin, ScoreMax].
type LandlordRating struct {
	RantGroupID    uint64 // landlord_ratings.rant_group_id (PK)
	Fairness       uint8  // landlord_ratings.fairness
	Responsiveness uint8  // landlord_ratings.responsiveness
	Maintenance    uint8  // landlord_ratings.maintenance
	PrivacyRespect uint8  // landlord_ratings.privacy_respect
}

// ApartmentRating holds the apartment and neighborhood sub-scores of
// one rant group, a row in `apartment_ratings`.  The neighborhood
// columns feed the place summary's neighbor breakdown.
type ApartmentRating struct {
	RantGroupID           uint64 // apartment_ratings.rant_group_id (PK)
	Condition             uint8  // apartment_ratings.condition_score
	Location              uint8  // apartment_ratings.location_score
	Value                 uint8  // apartment_ratings.value_score
	NeighborhoodSafety    uint8  // apartment_ratings.neighborhood_safety
	NeighborhoodNoise     uint8  // apartment_ratings.neighborhood_noise
	NeighborhoodCommunity uint8  // apartment_ratings.neighborhood_community
}

// RoommateRating rates a past or present roommate, a row in
// `roommate_ratings`.  Exactly one of TargetUserID and TargetHint is
// set: the id when the ratee has an account, the free-text hint
// (name or organisation) when they do not.
type RoommateRating struct {
	ID            uint64    // roommate_ratings.id
	RaterID       uint64    // roommate_ratings.rater_id
	TargetUserID  *uint64   // roommate_ratings.target_user_id (nullable)
	TargetHint    *string   // roommate_ratings.target_hint (nullable)
	Cleanliness   uint8     // roommate_ratings.cleanliness
	Communication uint8     // roommate_ratings.communication
	Reliability   uint8     // roommate_ratings.reliability
	Respect       uint8     // roommate_ratings.respect
	Comment       *string   // roommate_ratings.comment (nullable)
	CreatedAt     time.Time // roommate_ratings.created_at
}
