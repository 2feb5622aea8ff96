package model

import "time"

// Place is a physical address that listings and rant groups point at.
// Places are deduplicated on creation, either by the external map
// provider's place id or by coordinate proximity, and are immutable
// once created.
//
// Fields:
//  ID         – primary key identifier.
//  ExternalID – map provider place id, unique when present (nullable).
//  Address    – street address line.
//  City       – city name.
//  Lat, Lng   – WGS84 coordinates.
//  CreatedAt  – creation timestamp.
type Place struct {
	ID         uint64    // places.id
	ExternalID *string   // places.external_id (nullable, unique)
	Address    string    // places.address
	City       string    // places.city
	Lat        float64   // places.lat
	Lng        float64   // places.lng
	CreatedAt  time.Time // places.created_at
}

// Landlord is an anonymous landlord identity.  The only identifying
// value ever persisted is PhoneHash, the keyed hash of the landlord's
// normalized phone number; the number itself is never stored.  Rows are
// created lazily by the first rant submission that resolves to a new
// hash and reused afterwards.
type Landlord struct {
	ID        uint64    // landlords.id
	PhoneHash string    // landlords.phone_hash (unique, hex HMAC-SHA256)
	CreatedAt time.Time // landlords.created_at
}
