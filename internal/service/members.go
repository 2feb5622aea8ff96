package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// MembershipService is the registry of who currently lives in a
// shared-room listing.  It owns the spots_available counter: candidate
// decisions never touch it, only AddMember and RemoveMember do, each in
// one transaction with the membership write so the counter and the
// member rows cannot drift apart.
type MembershipService struct {
	DB       *sql.DB
	Users    *repository.UserRepo
	Listings *repository.ListingRepo
	Members  *repository.MemberRepo
}

func NewMembershipService(db *sql.DB, users *repository.UserRepo,
	listings *repository.ListingRepo, members *repository.MemberRepo) *MembershipService {
	if db == nil || users == nil || listings == nil || members == nil {
		panic("nil dependency passed to NewMembershipService")
	}
	return &MembershipService{DB: db, Users: users, Listings: listings, Members: members}
}

// AddMember adds a current member to a shared-room listing.  Only a
// current OWNER-role member may add; the join consumes a spot when one
// is available (the counter never goes below zero either way).
func (s *MembershipService) AddMember(ctx context.Context, listingID, userID uint64, role string, displayOrder uint32, requesterID uint64) (*model.ListingMember, error) {
	if role != model.MemberRoleOwner && role != model.MemberRoleTenant {
		return nil, invalid("role", "must be OWNER or TENANT")
	}
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
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

	listing, err := s.Listings.GetByIDTx(ctx, tx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Kind != model.KindSharedRoom {
		return nil, ErrNotSharedRoomGroup
	}
	if err := s.requireAdminTx(ctx, tx, listingID, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.Members.CurrentMemberTx(ctx, tx, listingID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrMemberNotFound) {
		return nil, err
	}

	member := &model.ListingMember{
		ListingID:    listingID,
		UserID:       userID,
		Role:         role,
		DisplayOrder: displayOrder,
	}
	if err := s.Members.InsertTx(ctx, tx, member); err != nil {
		return nil, err
	}
	if err := s.Listings.ConsumeSpotTx(ctx, tx, listingID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return member, nil
}

// RemoveMember retires a member's current row and releases their spot.
// Only a current OWNER member may remove, never themselves, and never
// the last OWNER of the listing.
func (s *MembershipService) RemoveMember(ctx context.Context, listingID, memberUserID, requesterID uint64) error {
	if memberUserID == requesterID {
		return ErrCannotRemoveSelf
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.Listings.GetByIDTx(ctx, tx, listingID); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	if err := s.requireAdminTx(ctx, tx, listingID, requesterID); err != nil {
		return err
	}
	member, err := s.Members.CurrentMemberTx(ctx, tx, listingID, memberUserID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.Role == model.MemberRoleOwner {
		owners, err := s.Members.CountCurrentByRoleTx(ctx, tx, listingID, model.MemberRoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrSoleOwner
		}
	}

	if err := s.Members.MarkLeftTx(ctx, tx, member.ID); err != nil {
		return err
	}
	if err := s.Listings.ReleaseSpotTx(ctx, tx, listingID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListMembers returns the current members of a listing in display
// order.  Open to any authenticated caller; membership composition is
// part of the public listing page.
func (s *MembershipService) ListMembers(ctx context.Context, listingID uint64) ([]model.ListingMember, error) {
	if _, err := s.Listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return s.Members.ListCurrent(ctx, listingID)
}

// requireAdminTx verifies the requester holds a current OWNER-role
// membership of the listing, inside the caller's transaction.
func (s *MembershipService) requireAdminTx(ctx context.Context, tx *sql.Tx, listingID, requesterID uint64) error {
	member, err := s.Members.CurrentMemberTx(ctx, tx, listingID, requesterID)
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
