package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/identity"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// getUserID extracts the authenticated user id stored in the context by
// the JWT middleware.  JWT numeric claims decode as float64; string
// subjects are parsed as a fallback.  Zero means unauthenticated.
func getUserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// pathID parses a numeric path parameter; 0 with false means the
// parameter was missing or not a number.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// queryLimit parses the optional ?limit query parameter; 0 lets the
// service apply its default.
func queryLimit(c echo.Context) int {
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

// fail maps a service error onto a stable HTTP status.  Every handler
// funnels its service errors through here, so the error families and
// status codes cannot drift apart per endpoint.
func fail(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, pagination.ErrMalformedCursor):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed cursor"})
	case errors.Is(err, identity.ErrInvalidPhone):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number"})

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrPlaceNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

	case errors.Is(err, service.ErrDuplicateSwipe),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAlreadyDecided):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})

	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrCannotRemoveSelf),
		errors.Is(err, service.ErrSoleOwner),
		errors.Is(err, service.ErrNotParticipant):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})

	case errors.Is(err, service.ErrSelfSwipe),
		errors.Is(err, service.ErrListingInactive),
		errors.Is(err, service.ErrNotSharedRoomGroup):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})

	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "timed out"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
