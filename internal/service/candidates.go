package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// CandidateService exposes a shared-room listing's review queue to its
// admins and records their decisions.  Deciding LIKE creates the match
// between the candidate and the listing; it deliberately leaves
// spots_available alone — admitting the candidate into the member list
// is a separate AddMember call.
type CandidateService struct {
	DB         *sql.DB
	Listings   *repository.ListingRepo
	Members    *repository.MemberRepo
	Candidates *repository.CandidateRepo
	Matches    *repository.MatchRepo
}

func NewCandidateService(db *sql.DB, listings *repository.ListingRepo, members *repository.MemberRepo,
	candidates *repository.CandidateRepo, matches *repository.MatchRepo) *CandidateService {
	if db == nil || listings == nil || members == nil || candidates == nil || matches == nil {
		panic("nil dependency passed to NewCandidateService")
	}
	return &CandidateService{DB: db, Listings: listings, Members: members, Candidates: candidates, Matches: matches}
}

// CandidateEntry is one queue entry rendered for an admin.
type CandidateEntry struct {
	User     model.User
	SwipedAt pagination.Key
}

// CandidatePage is one page of the queue plus its continuation cursor.
type CandidatePage struct {
	Candidates []CandidateEntry
	NextCursor string
}

// ListCandidates returns the listing's undecided likers, newest first.
// Admin only.
func (s *CandidateService) ListCandidates(ctx context.Context, listingID, requesterID uint64, cursor string, limit int) (*CandidatePage, error) {
	listing, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Kind != model.KindSharedRoom {
		return nil, ErrNotSharedRoomGroup
	}
	if err := s.requireAdmin(ctx, listingID, requesterID); err != nil {
		return nil, err
	}
	before, err := pagination.DecodeOptional(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)

	rows, err := s.Candidates.List(ctx, listingID, before, limit)
	if err != nil {
		return nil, err
	}
	page := &CandidatePage{Candidates: make([]CandidateEntry, 0, len(rows))}
	for _, r := range rows {
		page.Candidates = append(page.Candidates, CandidateEntry{User: r.User, SwipedAt: r.SwipedAt})
	}
	if n := len(rows); n > 0 {
		page.NextCursor = pagination.NextCursor(rows[n-1].SwipedAt, n, limit)
	}
	return page, nil
}

// Decide records an admin's like/pass on a candidate.  LIKE returns the
// match id (creating the match if this is the first decision to want
// it); PASS records a terminal decision and returns no match.  Either
// way the candidate stops appearing in subsequent queue pages: the
// decision row, not the original swipe, is the exclusion key.
func (s *CandidateService) Decide(ctx context.Context, listingID, candidateID uint64, decision string, requesterID uint64) (*uint64, error) {
	if err := validateAction(decision); err != nil {
		return nil, err
	}
	listing, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Kind != model.KindSharedRoom {
		return nil, ErrNotSharedRoomGroup
	}
	if err := s.requireAdmin(ctx, listingID, requesterID); err != nil {
		return nil, err
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

	liked, err := s.Candidates.HasLikedTx(ctx, tx, listingID, candidateID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return nil, ErrUserNotFound
	}

	record := &model.CandidateDecision{
		ListingID:   listingID,
		CandidateID: candidateID,
		Decision:    decision,
		DecidedBy:   requesterID,
	}
	if err := s.Candidates.InsertDecisionTx(ctx, tx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	var matchID *uint64
	var created *model.Match
	if decision == model.ActionLike {
		m, isNew, err := s.Matches.CreateListingMatchTx(ctx, tx, listingID, candidateID, requesterID)
		if err != nil {
			return nil, err
		}
		matchID = &m.ID
		if isNew {
			created = m
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	if created != nil {
		publishMatch(created)
	}
	return matchID, nil
}

func (s *CandidateService) requireAdmin(ctx context.Context, listingID, requesterID uint64) error {
	member, err := s.Members.CurrentMember(ctx, listingID, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return ErrNotAdmin
		}
		return err
	}
	if member.Role != model.MemberRoleOwner {
		return ErrNotAdmin
	}
	return nil
}
