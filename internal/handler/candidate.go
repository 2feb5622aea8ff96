package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// CandidateHandler exposes a shared-room listing's review queue to its
// admins.
type CandidateHandler struct {
	Candidates *service.CandidateService
}

func NewCandidateHandler(s *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{Candidates: s}
}

type decideReq struct {
	Decision string `json:"decision"` // LIKE | PASS
}

// List returns the undecided likers of a shared-room listing, newest
// first.
func (h *CandidateHandler) List(c echo.Context) error {
	listingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Candidates.ListCandidates(ctx, listingID, getUserID(c), c.QueryParam("cursor"), queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	out := make([]echo.Map, 0, len(page.Candidates))
	for _, e := range page.Candidates {
		out = append(out, echo.Map{
			"user": echo.Map{
				"id":           e.User.ID,
				"display_name": e.User.DisplayName,
				"photo_url":    e.User.PhotoURL,
				"bio":          e.User.Bio,
				"about":        e.User.About,
			},
			"swiped_at": e.SwipedAt.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"candidates":  out,
		"next_cursor": page.NextCursor,
	})
}

// Decide records the admin's like or pass on one candidate.  A like
// answers with the match id.
func (h *CandidateHandler) Decide(c echo.Context) error {
	listingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	candidateID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid candidate id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	matchID, err := h.Candidates.Decide(ctx, listingID, candidateID, strings.ToUpper(req.Decision), getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"match_id": matchID})
}
