package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// ListingService owns the listing lifecycle.  Creating a shared-room
// listing also seeds its creator as the first OWNER member inside the
// same transaction, so a shared-room group is never observable without
// an admin.
type ListingService struct {
	DB       *sql.DB
	Places   *repository.PlaceRepo
	Listings *repository.ListingRepo
	Members  *repository.MemberRepo
}

func NewListingService(db *sql.DB, places *repository.PlaceRepo, listings *repository.ListingRepo, members *repository.MemberRepo) *ListingService {
	if db == nil || places == nil || listings == nil || members == nil {
		panic("nil dependency passed to NewListingService")
	}
	return &ListingService{DB: db, Places: places, Listings: listings, Members: members}
}

// CreateListingInput carries a new listing plus the place it stands at.
// The place is resolved (or created) first, so two listings at the same
// address share one place row and one rating history.
type CreateListingInput struct {
	OwnerID            uint64
	PlaceExternalID    *string
	PlaceAddress       string
	PlaceCity          string
	PlaceLat, PlaceLng float64
	Kind               string
	Title              string
	Description        *string
	PriceCents         uint32
	AutoAccept         bool
	CapacityTotal      uint32
}

// Create validates, resolves the place and inserts the listing.  For
// SHARED_ROOM the owner membership row is written in the same
// transaction; capacity counts tenant spots, so seeding the owner does
// not consume one.
func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (*model.Listing, error) {
	if err := validateCreateListing(&in); err != nil {
		return nil, err
	}

	place, err := s.Places.GetOrCreate(ctx, &model.Place{
		ExternalID: in.PlaceExternalID,
		Address:    in.PlaceAddress,
		City:       in.PlaceCity,
		Lat:        in.PlaceLat,
		Lng:        in.PlaceLng,
	})
	if err != nil {
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

	listing := &model.Listing{
		OwnerID:        in.OwnerID,
		PlaceID:        place.ID,
		Kind:           in.Kind,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		PriceCents:     in.PriceCents,
		AutoAccept:     in.AutoAccept,
		CapacityTotal:  in.CapacityTotal,
		SpotsAvailable: in.CapacityTotal,
	}
	if err := s.Listings.CreateTx(ctx, tx, listing); err != nil {
		return nil, err
	}
	if listing.Kind == model.KindSharedRoom {
		if err := s.Members.InsertTx(ctx, tx, &model.ListingMember{
			ListingID: listing.ID,
			UserID:    in.OwnerID,
			Role:      model.MemberRoleOwner,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return listing, nil
}

// Get returns one listing by id.
func (s *ListingService) Get(ctx context.Context, id uint64) (*model.Listing, error) {
	l, err := s.Listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

// Deactivate hides the caller's listing from feeds.  Existing matches
// and memberships are untouched; only discovery stops.
func (s *ListingService) Deactivate(ctx context.Context, id, ownerID uint64) error {
	err := s.Listings.Deactivate(ctx, id, ownerID)
	if errors.Is(err, repository.ErrListingNotFound) {
		return ErrListingNotFound
	}
	return err
}

// ListOwn returns all of the caller's listings, newest first.
func (s *ListingService) ListOwn(ctx context.Context, ownerID uint64) ([]model.Listing, error) {
	return s.Listings.ListByOwner(ctx, ownerID)
}

func validateCreateListing(in *CreateListingInput) error {
	if in.Kind != model.KindWholeApartment && in.Kind != model.KindSharedRoom {
		return invalid("kind", "must be WHOLE_APARTMENT or SHARED_ROOM")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "required")
	}
	if in.PlaceExternalID == nil {
		if strings.TrimSpace(in.PlaceAddress) == "" {
			return invalid("placeAddress", "required without an external place id")
		}
		if in.PlaceLat == 0 && in.PlaceLng == 0 {
			return invalid("placeLat", "coordinates required without an external place id")
		}
	}
	if in.Kind == model.KindSharedRoom && in.CapacityTotal == 0 {
		return invalid("capacityTotal", "a shared-room listing needs at least one spot")
	}
	if in.Kind == model.KindWholeApartment {
		// A whole apartment is one unit; the counter stays consistent
		// even though the membership registry never touches it.
		in.CapacityTotal = 1
	}
	return nil
}
