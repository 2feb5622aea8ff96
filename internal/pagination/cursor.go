// Package pagination implements the keyset cursor shared by every
// list endpoint.  A cursor is the opaque encoding of the boundary row's
// (created_at, id) pair; pages are fetched strictly after that boundary
// in descending (created_at, id) order.  Because created_at alone is
// not unique, the id acts as the tiebreaker, which keeps paging stable
// under concurrent inserts.
package pagination

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

// ErrMalformedCursor is returned by Decode for any cursor that this
// package did not produce.  Handlers should translate it into an HTTP
// 400 response.
var ErrMalformedCursor = errors.New("malformed cursor")

// rawLen is the decoded cursor size: 8 bytes of big-endian microsecond
// timestamp followed by 8 bytes of big-endian id.  Fixed-width
// big-endian keeps the raw bytes ordered the same way as the values.
const rawLen = 16

// Limit bounds applied by ClampLimit.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Key is a row's position in the global (created_at, id) order.
type Key struct {
	CreatedAt time.Time
	ID        uint64
}

// Encode serializes a boundary key into an opaque URL-safe cursor.
func Encode(t time.Time, id uint64) string {
	var buf [rawLen]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(t.UTC().UnixMicro()))
	binary.BigEndian.PutUint64(buf[8:], id)
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

// Decode parses a cursor produced by Encode.  The returned time is in
// UTC with microsecond precision.
func Decode(cursor string) (time.Time, uint64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil || len(raw) != rawLen {
		return time.Time{}, 0, ErrMalformedCursor
	}
	micros := binary.BigEndian.Uint64(raw[:8])
	id := binary.BigEndian.Uint64(raw[8:])
	return time.UnixMicro(int64(micros)).UTC(), id, nil
}

// DecodeOptional decodes a cursor when one was supplied and returns nil
// for the empty string (first page).
func DecodeOptional(cursor string) (*Key, error) {
	if cursor == "" {
		return nil, nil
	}
	t, id, err := Decode(cursor)
	if err != nil {
		return nil, err
	}
	return &Key{CreatedAt: t, ID: id}, nil
}

// NextCursor applies the single page law every list endpoint follows:
// when a page came back full (len == limit) the response carries a
// cursor built from the last item so the client can continue; a short
// page is the final one and yields no cursor.
func NextCursor(last Key, count, limit int) string {
	if count < limit {
		return ""
	}
	return Encode(last.CreatedAt, last.ID)
}

// ClampLimit normalizes a client-supplied page size into [1, MaxLimit],
// substituting DefaultLimit for zero or negative values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
