package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// MatchHandler lists matches and serves their conversations.
type MatchHandler struct {
	Matches  *service.MatchService
	Messages *service.MessageService
}

func NewMatchHandler(m *service.MatchService, msgs *service.MessageService) *MatchHandler {
	return &MatchHandler{Matches: m, Messages: msgs}
}

type sendMessageReq struct {
	Body string `json:"body"`
}

// List returns the caller's matches, newest first.
func (h *MatchHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Matches.ListForUser(ctx, getUserID(c), c.QueryParam("cursor"), queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"matches":     page.Matches,
		"next_cursor": page.NextCursor,
	})
}

// Get returns one match the caller participates in.
func (h *MatchHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Matches.RequireParticipant(ctx, id, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// SendMessage appends a message to the match conversation.
func (h *MatchHandler) SendMessage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msg, err := h.Messages.Send(ctx, id, getUserID(c), req.Body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// ListMessages returns a page of the conversation, newest first.
func (h *MatchHandler) ListMessages(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.Messages.List(ctx, id, getUserID(c), c.QueryParam("cursor"), queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"messages":    page.Messages,
		"next_cursor": page.NextCursor,
	})
}
