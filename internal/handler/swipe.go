package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// SwipeHandler exposes the swipe ledger: one endpoint per target kind.
type SwipeHandler struct {
	Swipes *service.SwipeService
}

func NewSwipeHandler(s *service.SwipeService) *SwipeHandler { return &SwipeHandler{Swipes: s} }

type listingSwipeReq struct {
	ListingID uint64 `json:"listing_id"`
	Action    string `json:"action"` // LIKE | PASS
}
type userSwipeReq struct {
	TargetUserID uint64 `json:"target_user_id"`
	Action       string `json:"action"`
}

// SwipeListing records the caller's decision on a listing.  The
// response carries the match id when the like resolved to a match in
// the same call.
func (h *SwipeHandler) SwipeListing(c echo.Context) error {
	var req listingSwipeReq
	if err := c.Bind(&req); err != nil || req.ListingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id and action required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Swipes.SwipeOnListing(ctx, getUserID(c), req.ListingID, strings.ToUpper(req.Action))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"listing_id": res.Swipe.ListingID,
		"action":     res.Swipe.Action,
		"created_at": res.Swipe.CreatedAt,
		"match_id":   res.MatchID,
	})
}

// SwipeUser records the caller's decision on another user.  A like can
// resolve several matches at once: the peer match plus any of the
// caller's listings the target was already waiting on.
func (h *SwipeHandler) SwipeUser(c echo.Context) error {
	var req userSwipeReq
	if err := c.Bind(&req); err != nil || req.TargetUserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_user_id and action required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Swipes.SwipeOnUser(ctx, getUserID(c), req.TargetUserID, strings.ToUpper(req.Action))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"target_user_id": res.Swipe.TargetID,
		"action":         res.Swipe.Action,
		"created_at":     res.Swipe.CreatedAt,
		"match_ids":      res.MatchIDs,
	})
}
