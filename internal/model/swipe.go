package model

import "time"

// Swipe actions.  A swipe is recorded once per (actor, target) pair and
// is immutable afterwards; there is no undo path by design.
const (
	ActionLike = "LIKE"
	ActionPass = "PASS"
)

// ListingSwipe is one seeker decision on a listing, a row in the
// `listing_swipes` table.  The (actor_id, listing_id) pair carries a
// unique index so a second decision for the same listing fails at the
// storage layer regardless of request interleaving.
type ListingSwipe struct {
	ID        uint64    // listing_swipes.id
	ActorID   uint64    // listing_swipes.actor_id
	ListingID uint64    // listing_swipes.listing_id
	Action    string    // listing_swipes.action
	CreatedAt time.Time // listing_swipes.created_at
}

// UserSwipe is one decision by a user on another user (roommate
// browsing, or an owner deciding on a seeker), a row in the
// `user_swipes` table.  (actor_id, target_id) is unique; the pair is
// ordered, so A→B and B→A are distinct rows.
type UserSwipe struct {
	ID        uint64    // user_swipes.id
	ActorID   uint64    // user_swipes.actor_id
	TargetID  uint64    // user_swipes.target_id
	Action    string    // user_swipes.action
	CreatedAt time.Time // user_swipes.created_at
}
