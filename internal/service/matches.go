package service

import (
	"context"
	"log"
	"time"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/queue"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// Match state machine, per (actor, target) pair: NoSwipe -> Swiped ->
// Matched.  The pure transition rules live in the two functions below
// so they can be reasoned about (and tested) apart from storage; the
// services apply them inside the swipe and decision transactions.

// listingLikeCreatesMatch decides whether a seeker's like on a listing
// creates a match in the same call.
//
//   - WholeApartment: match iff the listing auto-accepts, or the owner
//     has already liked this seeker (ownerLiked).  Otherwise the pair
//     stays Swiped and the owner's own later like fires the match from
//     their side.
//   - SharedRoomGroup: never.  The like only surfaces the seeker in the
//     candidate queue; an admin decision is the only path to a match.
func listingLikeCreatesMatch(listing *model.Listing, ownerLiked bool) bool {
	if listing.Kind != model.KindWholeApartment {
		return false
	}
	return listing.AutoAccept || ownerLiked
}

// peerLikeCreatesMatch decides whether a user's like on another user
// creates a peer match: only when the reciprocal swipe already exists
// and is a like.
func peerLikeCreatesMatch(reciprocal *model.UserSwipe) bool {
	return reciprocal != nil && reciprocal.Action == model.ActionLike
}

// MatchService reads matches for conversation listing and participant
// checks.
type MatchService struct {
	Matches *repository.MatchRepo
}

func NewMatchService(matches *repository.MatchRepo) *MatchService {
	return &MatchService{Matches: matches}
}

// MatchPage is one page of a user's matches.
type MatchPage struct {
	Matches    []model.Match
	NextCursor string
}

// ListForUser returns the caller's matches, newest first, under the
// shared pagination law.
func (s *MatchService) ListForUser(ctx context.Context, userID uint64, cursor string, limit int) (*MatchPage, error) {
	before, err := pagination.DecodeOptional(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)
	matches, err := s.Matches.ListForUser(ctx, userID, before, limit)
	if err != nil {
		return nil, err
	}
	page := &MatchPage{Matches: matches}
	if n := len(matches); n > 0 {
		last := matches[n-1]
		page.NextCursor = pagination.NextCursor(
			pagination.Key{CreatedAt: last.CreatedAt, ID: last.ID}, n, limit)
	}
	return page, nil
}

// RequireParticipant loads a match and verifies the user is one of its
// two sides; ErrNotParticipant otherwise.
func (s *MatchService) RequireParticipant(ctx context.Context, matchID, userID uint64) (*model.Match, error) {
	m, err := s.Matches.GetByID(ctx, matchID)
	if err != nil {
		if err == repository.ErrMatchNotFound {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if m.UserAID != userID && m.UserBID != userID {
		return nil, ErrNotParticipant
	}
	return m, nil
}

// publishMatch fires the match.created event without letting broker
// trouble affect the request that created the match.
func publishMatch(m *model.Match) {
	ev := queue.MatchCreatedEvent{
		MatchID:   m.ID,
		Kind:      m.Kind,
		ListingID: m.ListingID,
		UserAID:   m.UserAID,
		UserBID:   m.UserBID,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := PublishMatchCreated(ctx, ev); err != nil {
		log.Printf("match %d: event publish skipped: %v", m.ID, err)
	}
}
