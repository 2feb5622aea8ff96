package identity

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		cc      string
		want    string
		wantErr bool
	}{
		{name: "already e164", raw: "+972501234567", cc: "972", want: "+972501234567"},
		{name: "national trunk prefix", raw: "0501234567", cc: "972", want: "+972501234567"},
		{name: "bare subscriber", raw: "501234567", cc: "972", want: "+972501234567"},
		{name: "separators stripped", raw: "050-123 45.67", cc: "972", want: "+972501234567"},
		{name: "parenthesised area", raw: "(050) 1234567", cc: "972", want: "+972501234567"},
		{name: "e164 other country", raw: "+14155552671", cc: "972", want: "+14155552671"},
		{name: "empty", raw: "", cc: "972", wantErr: true},
		{name: "letters", raw: "05012345ab", cc: "972", wantErr: true},
		{name: "plus then too short", raw: "+1234567", cc: "972", wantErr: true},
		{name: "plus then too long", raw: "+1234567890123456", cc: "972", wantErr: true},
		{name: "plus then leading zero", raw: "+0501234567", cc: "972", wantErr: true},
		{name: "lone trunk zero", raw: "0", cc: "972", wantErr: true},
		{name: "double zero prefix", raw: "00501234567", cc: "972", wantErr: true},
		{name: "bad country code", raw: "0501234567", cc: "9x2", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.raw, tc.cc)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) = %q, want error", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("test-secret")
	e164, err := NormalizePhone("0501234567", "972")
	if err != nil {
		t.Fatal(err)
	}
	first := h.Hash(e164)
	for i := 0; i < 3; i++ {
		if got := h.Hash(e164); got != first {
			t.Fatalf("hash not deterministic: %q != %q", got, first)
		}
	}
	if len(first) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(first))
	}
	if strings.ToLower(first) != first {
		t.Fatalf("hash not lowercase hex: %q", first)
	}
}

func TestHashKeyed(t *testing.T) {
	a := NewHasher("secret-a").Hash("+972501234567")
	b := NewHasher("secret-b").Hash("+972501234567")
	if a == b {
		t.Fatal("different secrets produced the same hash")
	}
}
