package service

import (
	"testing"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
)

func TestListingLikeCreatesMatch(t *testing.T) {
	cases := []struct {
		name       string
		kind       string
		autoAccept bool
		ownerLiked bool
		want       bool
	}{
		{"whole apartment auto accept", model.KindWholeApartment, true, false, true},
		{"whole apartment owner already liked", model.KindWholeApartment, false, true, true},
		{"whole apartment pending owner", model.KindWholeApartment, false, false, false},
		{"shared room never matches directly", model.KindSharedRoom, true, true, false},
		{"shared room plain like", model.KindSharedRoom, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := &model.Listing{Kind: tc.kind, AutoAccept: tc.autoAccept}
			if got := listingLikeCreatesMatch(l, tc.ownerLiked); got != tc.want {
				t.Fatalf("listingLikeCreatesMatch = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPeerLikeCreatesMatch(t *testing.T) {
	if peerLikeCreatesMatch(nil) {
		t.Fatal("no reciprocal swipe must not match")
	}
	if peerLikeCreatesMatch(&model.UserSwipe{Action: model.ActionPass}) {
		t.Fatal("reciprocal pass must not match")
	}
	if !peerLikeCreatesMatch(&model.UserSwipe{Action: model.ActionLike}) {
		t.Fatal("reciprocal like must match")
	}
}
