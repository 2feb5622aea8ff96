package repository

import "testing"

func TestCanonicalPair(t *testing.T) {
	cases := []struct {
		inA, inB   uint64
		outA, outB uint64
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{7, 7, 7, 7},
		{0, 5, 0, 5},
	}
	for _, tc := range cases {
		a, b := canonicalPair(tc.inA, tc.inB)
		if a != tc.outA || b != tc.outB {
			t.Fatalf("canonicalPair(%d, %d) = (%d, %d), want (%d, %d)",
				tc.inA, tc.inB, a, b, tc.outA, tc.outB)
		}
	}
	// Both orders of the same pair must map to the same row key.
	a1, b1 := canonicalPair(10, 42)
	a2, b2 := canonicalPair(42, 10)
	if a1 != a2 || b1 != b2 {
		t.Fatal("pair canonicalization is direction dependent")
	}
}

func TestPrefixColumns(t *testing.T) {
	got := prefixColumns("u", "id, email, created_at")
	want := "u.id, u.email, u.created_at"
	if got != want {
		t.Fatalf("prefixColumns = %q, want %q", got, want)
	}
}
