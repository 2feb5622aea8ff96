package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// MemberHandler exposes the membership registry of shared-room
// listings.
type MemberHandler struct {
	Members *service.MembershipService
}

func NewMemberHandler(s *service.MembershipService) *MemberHandler {
	return &MemberHandler{Members: s}
}

type addMemberReq struct {
	UserID       uint64 `json:"user_id"`
	Role         string `json:"role"` // OWNER | TENANT
	DisplayOrder uint32 `json:"display_order"`
}

// List returns the listing's current members in display order.
func (h *MemberHandler) List(c echo.Context) error {
	listingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	members, err := h.Members.ListMembers(ctx, listingID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"members": members})
}

// Add joins a user to the listing.  Admin only.
func (h *MemberHandler) Add(c echo.Context) error {
	listingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var req addMemberReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and role required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	member, err := h.Members.AddMember(ctx, listingID, req.UserID,
		strings.ToUpper(strings.TrimSpace(req.Role)), req.DisplayOrder, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

// Remove retires a member's current row.  Admin only; the admin cannot
// remove themselves and the last owner cannot be removed at all.
func (h *MemberHandler) Remove(c echo.Context) error {
	listingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Members.RemoveMember(ctx, listingID, userID, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
