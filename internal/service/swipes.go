package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// SwipeService records swipe decisions and resolves matches in the
// same transaction as the ledger insert, so a crash can never leave a
// like without its match (or the other way round).
type SwipeService struct {
	DB       *sql.DB
	Users    *repository.UserRepo
	Listings *repository.ListingRepo
	Swipes   *repository.SwipeRepo
	Matches  *repository.MatchRepo
}

func NewSwipeService(db *sql.DB, users *repository.UserRepo, listings *repository.ListingRepo,
	swipes *repository.SwipeRepo, matches *repository.MatchRepo) *SwipeService {
	if db == nil || users == nil || listings == nil || swipes == nil || matches == nil {
		panic("nil dependency passed to NewSwipeService")
	}
	return &SwipeService{DB: db, Users: users, Listings: listings, Swipes: swipes, Matches: matches}
}

// ListingSwipeResult reports a recorded listing swipe.  MatchID is set
// only when the swipe created (or re-hit) a match in the same call; a
// shared-room like yields no match id even though the seeker is now a
// candidate.
type ListingSwipeResult struct {
	Swipe   model.ListingSwipe
	MatchID *uint64
}

// UserSwipeResult reports a recorded user swipe.  MatchIDs can carry
// more than one id: a peer match plus any whole-apartment listings of
// the liker that the target had pending likes on.
type UserSwipeResult struct {
	Swipe    model.UserSwipe
	MatchIDs []uint64
}

// SwipeOnListing records a seeker's decision on a listing and applies
// the listing-kind match rule.
//
// Preconditions: the listing exists and is active, the actor is not
// the owner, and the actor has not swiped this listing before.
func (s *SwipeService) SwipeOnListing(ctx context.Context, actorID, listingID uint64, action string) (*ListingSwipeResult, error) {
	if err := validateAction(action); err != nil {
		return nil, err
	}
	listing, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.IsActive {
		return nil, ErrListingInactive
	}
	if listing.OwnerID == actorID {
		return nil, ErrSelfSwipe
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

	swipe := &model.ListingSwipe{ActorID: actorID, ListingID: listingID, Action: action}
	if err := s.Swipes.InsertListingSwipeTx(ctx, tx, swipe); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSwipe
		}
		return nil, err
	}

	result := &ListingSwipeResult{Swipe: *swipe}
	var created *model.Match
	if action == model.ActionLike {
		// The owner's prior like on the seeker is a user swipe.
		ownerSwipe, err := s.Swipes.GetUserSwipeTx(ctx, tx, listing.OwnerID, actorID)
		if err != nil {
			return nil, err
		}
		ownerLiked := ownerSwipe != nil && ownerSwipe.Action == model.ActionLike
		if listingLikeCreatesMatch(listing, ownerLiked) {
			m, isNew, err := s.Matches.CreateListingMatchTx(ctx, tx, listing.ID, actorID, listing.OwnerID)
			if err != nil {
				return nil, err
			}
			result.MatchID = &m.ID
			if isNew {
				created = m
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	if created != nil {
		publishMatch(created)
	}
	return result, nil
}

// SwipeOnUser records a user's decision on another user.  A like is
// evaluated twice: once for the peer mutual-like rule, and once from
// the owner's side of the whole-apartment rule, firing the match for
// every active whole-apartment listing of the actor that the target
// had already liked.
func (s *SwipeService) SwipeOnUser(ctx context.Context, actorID, targetID uint64, action string) (*UserSwipeResult, error) {
	if err := validateAction(action); err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, ErrSelfSwipe
	}
	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !target.IsActive {
		return nil, ErrUserNotFound
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

	swipe := &model.UserSwipe{ActorID: actorID, TargetID: targetID, Action: action}
	if err := s.Swipes.InsertUserSwipeTx(ctx, tx, swipe); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSwipe
		}
		return nil, err
	}

	result := &UserSwipeResult{Swipe: *swipe}
	var createdEvents []*model.Match
	if action == model.ActionLike {
		reciprocal, err := s.Swipes.GetUserSwipeTx(ctx, tx, targetID, actorID)
		if err != nil {
			return nil, err
		}
		if peerLikeCreatesMatch(reciprocal) {
			m, isNew, err := s.Matches.CreatePeerMatchTx(ctx, tx, actorID, targetID)
			if err != nil {
				return nil, err
			}
			result.MatchIDs = append(result.MatchIDs, m.ID)
			if isNew {
				createdEvents = append(createdEvents, m)
			}
		}
		// Owner-side whole-apartment rule: the actor may own listings the
		// target liked while waiting for this decision.
		pending, err := s.Swipes.ListPendingLikedListingsTx(ctx, tx, actorID, targetID)
		if err != nil {
			return nil, err
		}
		for _, listingID := range pending {
			m, isNew, err := s.Matches.CreateListingMatchTx(ctx, tx, listingID, targetID, actorID)
			if err != nil {
				return nil, err
			}
			result.MatchIDs = append(result.MatchIDs, m.ID)
			if isNew {
				createdEvents = append(createdEvents, m)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	for _, m := range createdEvents {
		publishMatch(m)
	}
	return result, nil
}

func validateAction(action string) error {
	if action != model.ActionLike && action != model.ActionPass {
		return invalid("action", "must be LIKE or PASS")
	}
	return nil
}
