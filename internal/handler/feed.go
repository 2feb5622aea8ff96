package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// FeedHandler serves the two discovery feeds.
type FeedHandler struct {
	Feed *service.FeedService
}

func NewFeedHandler(f *service.FeedService) *FeedHandler { return &FeedHandler{Feed: f} }

// Listings returns a page of the apartment feed.  Optional query
// filters: kind, min_price, max_price, city; plus cursor and limit.
func (h *FeedHandler) Listings(c echo.Context) error {
	filters := repository.FeedFilters{
		Kind: strings.ToUpper(strings.TrimSpace(c.QueryParam("kind"))),
		City: strings.TrimSpace(c.QueryParam("city")),
	}
	if s := c.QueryParam("min_price"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			filters.MinPriceCents = uint32(n)
		}
	}
	if s := c.QueryParam("max_price"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			filters.MaxPriceCents = uint32(n)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Feed.ListingFeed(ctx, getUserID(c), filters, c.QueryParam("cursor"), queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings":    page.Listings,
		"next_cursor": page.NextCursor,
	})
}

// Roommates returns a page of the roommate feed.
func (h *FeedHandler) Roommates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Feed.RoommateFeed(ctx, getUserID(c), c.QueryParam("cursor"), queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	// Strip credentials before the profiles leave the service.
	users := make([]echo.Map, 0, len(page.Users))
	for _, u := range page.Users {
		users = append(users, echo.Map{
			"id":           u.ID,
			"display_name": u.DisplayName,
			"photo_url":    u.PhotoURL,
			"bio":          u.Bio,
			"about":        u.About,
			"created_at":   u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":       users,
		"next_cursor": page.NextCursor,
	})
}
