package service

import (
	"context"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// FeedService serves the two discovery feeds.  Both are plain keyset
// range scans: the exclusion of already-swiped targets happens in SQL,
// so a feed page never shows something the viewer has acted on, and
// paging never skips or repeats under concurrent inserts.
type FeedService struct {
	Users    *repository.UserRepo
	Listings *repository.ListingRepo
}

func NewFeedService(users *repository.UserRepo, listings *repository.ListingRepo) *FeedService {
	if users == nil || listings == nil {
		panic("nil dependency passed to NewFeedService")
	}
	return &FeedService{Users: users, Listings: listings}
}

// ListingFeedPage is one page of the apartment feed.
type ListingFeedPage struct {
	Listings   []model.Listing
	NextCursor string
}

// RoommateFeedPage is one page of the roommate feed.
type RoommateFeedPage struct {
	Users      []model.User
	NextCursor string
}

// ListingFeed returns a page of active listings the viewer has not
// swiped yet, newest first, narrowed by the optional filters.
func (s *FeedService) ListingFeed(ctx context.Context, viewerID uint64, f repository.FeedFilters, cursor string, limit int) (*ListingFeedPage, error) {
	before, err := pagination.DecodeOptional(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)
	rows, err := s.Listings.ListFeed(ctx, viewerID, f, before, limit)
	if err != nil {
		return nil, err
	}
	page := &ListingFeedPage{Listings: rows}
	if n := len(rows); n > 0 {
		last := rows[n-1]
		page.NextCursor = pagination.NextCursor(
			pagination.Key{CreatedAt: last.CreatedAt, ID: last.ID}, n, limit)
	}
	return page, nil
}

// RoommateFeed returns a page of active seekers the viewer has not
// swiped yet, newest first.
func (s *FeedService) RoommateFeed(ctx context.Context, viewerID uint64, cursor string, limit int) (*RoommateFeedPage, error) {
	before, err := pagination.DecodeOptional(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)
	rows, err := s.Users.ListSeekerFeed(ctx, viewerID, before, limit)
	if err != nil {
		return nil, err
	}
	page := &RoommateFeedPage{Users: rows}
	if n := len(rows); n > 0 {
		last := rows[n-1]
		page.NextCursor = pagination.NextCursor(
			pagination.Key{CreatedAt: last.CreatedAt, ID: last.ID}, n, limit)
	}
	return page, nil
}
