package model

import "time"

// Membership roles stored in listing_members.role.  Every shared-room
// listing has exactly one current OWNER member at all times; the
// listing creator is seeded as the first one.
const (
	MemberRoleOwner  = "OWNER"
	MemberRoleTenant = "TENANT"
)

// ListingMember is one membership row in `listing_members`.  A user has
// at most one current row per listing; when a member leaves, the row is
// flipped to IsCurrent=false and stamped with LeftAt rather than being
// deleted, so the listing keeps its full occupancy history.
type ListingMember struct {
	ID           uint64     // listing_members.id
	ListingID    uint64     // listing_members.listing_id
	UserID       uint64     // listing_members.user_id
	Role         string     // listing_members.role
	IsCurrent    bool       // listing_members.is_current
	DisplayOrder uint32     // listing_members.display_order
	JoinedAt     time.Time  // listing_members.joined_at
	LeftAt       *time.Time // listing_members.left_at (nullable)
}
