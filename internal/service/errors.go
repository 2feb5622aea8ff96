// Package service implements the engine operations behind the HTTP
// layer: the swipe ledger, match resolution, the membership registry,
// the candidate queue, rant submission, rating aggregation, feeds and
// messaging.  Every operation returns a success value or one of the
// typed errors below; handlers map them onto stable HTTP codes and
// never see unstructured failures.
package service

import (
	"errors"
	"fmt"
)

// Not-found family (HTTP 404).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrMemberNotFound  = errors.New("member not found")
)

// Conflict family (HTTP 409).
var (
	ErrDuplicateSwipe = errors.New("already swiped this target")
	ErrAlreadyMember  = errors.New("user is already a current member")
	ErrAlreadyDecided = errors.New("candidate already decided")
)

// Forbidden family (HTTP 403).
var (
	ErrNotAdmin         = errors.New("requester is not a listing admin")
	ErrCannotRemoveSelf = errors.New("admins cannot remove themselves")
	ErrSoleOwner        = errors.New("cannot remove the only owner member")
	ErrNotParticipant   = errors.New("requester is not a match participant")
)

// Invalid-input family (HTTP 400) that is not tied to a single field.
var (
	ErrSelfSwipe          = errors.New("cannot swipe on yourself")
	ErrListingInactive    = errors.New("listing is not active")
	ErrNotSharedRoomGroup = errors.New("listing is not a shared-room group")
)

// ValidationError reports an invalid request field.  It is checked
// before any write, so a failing validation never leaves partial state
// behind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
