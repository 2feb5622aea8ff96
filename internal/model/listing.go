package model

import "time"

// Listing kinds stored in listings.kind.  A whole-apartment listing is
// rented as a single unit and matches seekers directly; a shared-room
// listing is a rooms-for-roommates group whose admins review a
// candidate queue before anyone joins.
const (
	KindWholeApartment = "WHOLE_APARTMENT"
	KindSharedRoom     = "SHARED_ROOM"
)

// Listing represents a housing unit offered for rent, one row in the
// `listings` table.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user who published the listing.
//  PlaceID        – physical address of the unit.
//  Kind           – WHOLE_APARTMENT or SHARED_ROOM.
//  Title          – short headline.
//  Description    – free-text description (nullable).
//  PriceCents     – monthly rent in cents.
//  AutoAccept     – when true, a seeker's like on a whole-apartment
//                   listing matches immediately without an owner like.
//  CapacityTotal  – total number of tenant spots (SHARED_ROOM only).
//  SpotsAvailable – remaining open spots; mutated only by the
//                   membership registry, never by candidate decisions.
//  IsActive       – whether the listing is visible in feeds.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Listing struct {
	ID             uint64    // listings.id
	OwnerID        uint64    // listings.owner_id
	PlaceID        uint64    // listings.place_id
	Kind           string    // listings.kind
	Title          string    // listings.title
	Description    *string   // listings.description (nullable)
	PriceCents     uint32    // listings.price_cents
	AutoAccept     bool      // listings.auto_accept
	CapacityTotal  uint32    // listings.capacity_total
	SpotsAvailable uint32    // listings.spots_available
	IsActive       bool      // listings.is_active
	CreatedAt      time.Time // listings.created_at
	UpdatedAt      time.Time // listings.updated_at
}
