package model

import "time"

// Message is one chat message inside a match, a row in `messages`.
// Messages are polled by clients through the keyset-paginated list
// endpoint; there is no push channel.
type Message struct {
	ID        uint64    // messages.id
	MatchID   uint64    // messages.match_id
	SenderID  uint64    // messages.sender_id
	Body      string    // messages.body
	CreatedAt time.Time // messages.created_at
}
