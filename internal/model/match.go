package model

import "time"

// Match kinds stored in matches.kind.
const (
	MatchKindListing = "LISTING" // a seeker matched with a listing
	MatchKindPeer    = "PEER"    // two users matched with each other
)

// Match is a confirmed pairing that unlocks messaging, one row in the
// `matches` table.  For LISTING matches UserAID is the seeker, UserBID
// is the listing owner and ListingID is set; (listing_id, user_a_id)
// is unique.  For PEER matches ListingID is nil and the two user ids
// are stored in ascending order, making (kind, user_a_id, user_b_id)
// unique independent of which side's like arrived last.
type Match struct {
	ID        uint64    // matches.id
	Kind      string    // matches.kind
	ListingID *uint64   // matches.listing_id (nullable, LISTING only)
	UserAID   uint64    // matches.user_a_id
	UserBID   uint64    // matches.user_b_id
	CreatedAt time.Time // matches.created_at
}

// CandidateDecision records an admin's like/pass on a shared-room
// candidate, one row in `candidate_decisions`.  The decision row (not
// the seeker's original swipe) is what removes a candidate from the
// queue; (listing_id, candidate_id) is unique so a candidate is decided
// at most once.
type CandidateDecision struct {
	ID          uint64    // candidate_decisions.id
	ListingID   uint64    // candidate_decisions.listing_id
	CandidateID uint64    // candidate_decisions.candidate_id
	Decision    string    // candidate_decisions.decision (LIKE or PASS)
	DecidedBy   uint64    // candidate_decisions.decided_by
	CreatedAt   time.Time // candidate_decisions.created_at
}
