package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// ListingHandler exposes the listing lifecycle to owners and the
// listing page to everyone authenticated.
type ListingHandler struct {
	Listings *service.ListingService
}

func NewListingHandler(s *service.ListingService) *ListingHandler {
	return &ListingHandler{Listings: s}
}

type createListingReq struct {
	Kind          string  `json:"kind"` // WHOLE_APARTMENT | SHARED_ROOM
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	PriceCents    uint32  `json:"price_cents"`
	AutoAccept    bool    `json:"auto_accept"`
	CapacityTotal uint32  `json:"capacity_total"`

	PlaceExternalID *string `json:"place_external_id"`
	PlaceAddress    string  `json:"place_address"`
	PlaceCity       string  `json:"place_city"`
	PlaceLat        float64 `json:"place_lat"`
	PlaceLng        float64 `json:"place_lng"`
}

// Create publishes a new listing owned by the caller.
func (h *ListingHandler) Create(c echo.Context) error {
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listing, err := h.Listings.Create(ctx, service.CreateListingInput{
		OwnerID:         getUserID(c),
		PlaceExternalID: req.PlaceExternalID,
		PlaceAddress:    req.PlaceAddress,
		PlaceCity:       req.PlaceCity,
		PlaceLat:        req.PlaceLat,
		PlaceLng:        req.PlaceLng,
		Kind:            strings.ToUpper(strings.TrimSpace(req.Kind)),
		Title:           req.Title,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		AutoAccept:      req.AutoAccept,
		CapacityTotal:   req.CapacityTotal,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, listing)
}

// Get returns one listing by id.
func (h *ListingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listing, err := h.Listings.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

// Deactivate hides the caller's listing from feeds.
func (h *ListingHandler) Deactivate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Deactivate(ctx, id, getUserID(c)); err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the listing owner"})
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOwn returns every listing the caller owns, active or not.
func (h *ListingHandler) ListOwn(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Listings.ListOwn(ctx, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": listings})
}
