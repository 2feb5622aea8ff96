package pagination

import (
	"sort"
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	cases := []struct {
		ts time.Time
		id uint64
	}{
		{time.UnixMicro(0).UTC(), 0},
		{time.UnixMicro(1).UTC(), 1},
		{time.Date(2024, 6, 1, 12, 30, 0, 123456000, time.UTC), 42},
		{time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), 18446744073709551615},
	}
	for _, tc := range cases {
		cur := Encode(tc.ts, tc.id)
		ts, id, err := Decode(cur)
		if err != nil {
			t.Fatalf("Decode(Encode(%v, %d)): %v", tc.ts, tc.id, err)
		}
		if !ts.Equal(tc.ts) || id != tc.id {
			t.Fatalf("round trip = (%v, %d), want (%v, %d)", ts, id, tc.ts, tc.id)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, cur := range []string{"not base64!!", "AAAA", "", "aGVsbG8gd29ybGQaGVsbG8gd29ybGQ"} {
		if _, _, err := Decode(cur); err != ErrMalformedCursor {
			t.Fatalf("Decode(%q) err = %v, want ErrMalformedCursor", cur, err)
		}
	}
}

func TestDecodeOptionalEmpty(t *testing.T) {
	k, err := DecodeOptional("")
	if err != nil || k != nil {
		t.Fatalf("DecodeOptional(\"\") = (%v, %v), want (nil, nil)", k, err)
	}
}

// Encoded cursors must sort lexically in the same order as their
// (created_at, id) keys, since the byte layout is fixed-width
// big-endian.
func TestCursorLexicalOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	keys := []Key{
		{base, 1},
		{base, 2},
		{base.Add(time.Microsecond), 1},
		{base.Add(time.Second), 9},
		{base.Add(time.Hour), 3},
	}
	encoded := make([]string, len(keys))
	for i, k := range keys {
		encoded[i] = Encode(k.CreatedAt, k.ID)
	}
	if !sort.StringsAreSorted(encoded) {
		t.Fatalf("cursors not in key order: %v", encoded)
	}
}

func TestNextCursorPageLaw(t *testing.T) {
	last := Key{CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ID: 7}
	if got := NextCursor(last, 10, 10); got == "" {
		t.Fatal("full page must carry a next cursor")
	}
	if got := NextCursor(last, 9, 10); got != "" {
		t.Fatalf("short page must not carry a next cursor, got %q", got)
	}
}

// Paging a fixed dataset with the cursor boundary must visit every item
// exactly once, in descending (created_at, id) order.
func TestPagingVisitsEachItemOnce(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var items []Key
	for i := 0; i < 23; i++ {
		// Duplicate timestamps every other item to exercise the id tiebreaker.
		items = append(items, Key{CreatedAt: base.Add(time.Duration(i/2) * time.Minute), ID: uint64(i + 1)})
	}
	// Descending (created_at, id), the order a feed query returns.
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	// fetch emulates the repository's range scan: rows strictly after the
	// cursor boundary in descending order.
	fetch := func(before *Key, limit int) []Key {
		var out []Key
		for _, it := range items {
			if before != nil {
				after := it.CreatedAt.Before(before.CreatedAt) ||
					(it.CreatedAt.Equal(before.CreatedAt) && it.ID < before.ID)
				if !after {
					continue
				}
			}
			out = append(out, it)
			if len(out) == limit {
				break
			}
		}
		return out
	}

	const limit = 5
	var visited []Key
	cursor := ""
	for pages := 0; ; pages++ {
		if pages > len(items) {
			t.Fatal("paging did not terminate")
		}
		before, err := DecodeOptional(cursor)
		if err != nil {
			t.Fatal(err)
		}
		page := fetch(before, limit)
		visited = append(visited, page...)
		if len(page) < limit {
			break
		}
		cursor = NextCursor(page[len(page)-1], len(page), limit)
		if cursor == "" {
			break
		}
	}
	if len(visited) != len(items) {
		t.Fatalf("visited %d items, want %d", len(visited), len(items))
	}
	for i := range visited {
		if visited[i] != items[i] {
			t.Fatalf("item %d out of order: got %+v want %+v", i, visited[i], items[i])
		}
	}
}
