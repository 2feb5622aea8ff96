// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// MatchCreatedEvent is published whenever a match row is created: a
// whole-apartment auto-accept or mutual like, a peer mutual like, or an
// admin liking a shared-room candidate.  It carries enough for
// downstream consumers (notifications, analytics) to act without
// querying the primary database.
type MatchCreatedEvent struct {
	MatchID   uint64  `json:"match_id"`
	Kind      string  `json:"kind"` // LISTING or PEER
	ListingID *uint64 `json:"listing_id,omitempty"`
	UserAID   uint64  `json:"user_a_id"`
	UserBID   uint64  `json:"user_b_id"`
	CreatedAt string  `json:"created_at"`
}

// matchQueueName is the durable queue both the publisher and the
// consumer declare.
const matchQueueName = "match.created"

// QueueName exposes the queue name to the publisher package.
func QueueName() string { return matchQueueName }
