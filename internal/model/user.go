package model

import "time"

// Roles stored in users.role.  SEEKER accounts browse listings and other
// seekers; OWNER accounts publish listings and review candidates for them.
const (
	RoleSeeker = "SEEKER"
	RoleOwner  = "OWNER"
)

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  Profile
// fields (display name, photo, bio, about) are written at signup and
// profile-edit time; the engine treats them as read-only inputs.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – SEEKER or OWNER.
//  DisplayName  – public name shown in feeds and candidate lists.
//  PhotoURL     – profile photo location (nullable).
//  Bio          – short one-line description (nullable).
//  About        – free-text self description (nullable).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	DisplayName  string    // users.display_name
	PhotoURL     *string   // users.photo_url (nullable)
	Bio          *string   // users.bio (nullable)
	About        *string   // users.about (nullable)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry and
// revocation.  The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
