package service

import (
	"context"
	"strings"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// maxMessageLen bounds a single chat message body.
const maxMessageLen = 2000

// MessageService handles match conversations.  Messaging is gated on
// match participation: a conversation exists exactly between the two
// sides of a match, nobody else can read or write it.
type MessageService struct {
	Matches  *MatchService
	Messages *repository.MessageRepo
}

func NewMessageService(matches *MatchService, messages *repository.MessageRepo) *MessageService {
	if matches == nil || messages == nil {
		panic("nil dependency passed to NewMessageService")
	}
	return &MessageService{Matches: matches, Messages: messages}
}

// MessagePage is one page of a conversation, newest first.
type MessagePage struct {
	Messages   []model.Message
	NextCursor string
}

// Send appends a message to a match conversation on behalf of one of
// its participants.
func (s *MessageService) Send(ctx context.Context, matchID, senderID uint64, body string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, invalid("body", "required")
	}
	if len(body) > maxMessageLen {
		return nil, invalid("body", "too long")
	}
	if _, err := s.Matches.RequireParticipant(ctx, matchID, senderID); err != nil {
		return nil, err
	}
	msg := &model.Message{MatchID: matchID, SenderID: senderID, Body: body}
	if err := s.Messages.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns a page of the conversation for one of its participants.
func (s *MessageService) List(ctx context.Context, matchID, requesterID uint64, cursor string, limit int) (*MessagePage, error) {
	if _, err := s.Matches.RequireParticipant(ctx, matchID, requesterID); err != nil {
		return nil, err
	}
	before, err := pagination.DecodeOptional(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit)
	rows, err := s.Messages.ListByMatch(ctx, matchID, before, limit)
	if err != nil {
		return nil, err
	}
	page := &MessagePage{Messages: rows}
	if n := len(rows); n > 0 {
		last := rows[n-1]
		page.NextCursor = pagination.NextCursor(
			pagination.Key{CreatedAt: last.CreatedAt, ID: last.ID}, n, limit)
	}
	return page, nil
}
