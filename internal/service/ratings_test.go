package service

import (
	"math"
	"testing"
	"time"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarizePlaceEmpty(t *testing.T) {
	sum := summarizePlace(nil)
	if sum.Landlord != nil || sum.Apartment != nil || sum.Neighbors != nil {
		t.Fatal("empty place must have absent breakdowns, not zeros")
	}
	if len(sum.Recent) != 0 {
		t.Fatalf("empty place Recent = %d entries", len(sum.Recent))
	}
}

// A rant group with only a landlord child must yield a present landlord
// average, absent apartment and neighbor averages, and a recent entry
// without apartment scores.
func TestSummarizePlacePartialData(t *testing.T) {
	rants := []repository.PlaceRant{
		{
			Group: model.RantGroup{ID: 1, CreatedAt: time.Now()},
			Landlord: &model.LandlordRating{
				RantGroupID: 1, Fairness: 8, Responsiveness: 6, Maintenance: 7, PrivacyRespect: 9,
			},
		},
	}
	sum := summarizePlace(rants)
	if sum.Landlord == nil {
		t.Fatal("landlord breakdown absent despite one landlord rating")
	}
	if sum.Apartment != nil || sum.Neighbors != nil {
		t.Fatal("apartment/neighbor breakdowns must be absent, not zero")
	}
	if sum.Landlord.Count != 1 {
		t.Fatalf("landlord count = %d, want 1", sum.Landlord.Count)
	}
	if got := sum.Landlord.SubScores["fairness"]; !almostEqual(got, 8) {
		t.Fatalf("fairness mean = %v, want 8", got)
	}
	if want := (8.0 + 6 + 7 + 9) / 4; !almostEqual(sum.Landlord.Overall, want) {
		t.Fatalf("landlord overall = %v, want %v", sum.Landlord.Overall, want)
	}
	if len(sum.Recent) != 1 {
		t.Fatalf("Recent = %d entries, want 1", len(sum.Recent))
	}
	if sum.Recent[0].ApartmentScores != nil {
		t.Fatal("recent entry must not fabricate apartment scores")
	}
	if sum.Recent[0].LandlordScores == nil {
		t.Fatal("recent entry lost its landlord scores")
	}
}

func TestSummarizePlaceMeans(t *testing.T) {
	rants := []repository.PlaceRant{
		{
			Group:    model.RantGroup{ID: 2},
			Landlord: &model.LandlordRating{Fairness: 10, Responsiveness: 10, Maintenance: 10, PrivacyRespect: 10},
			Apartment: &model.ApartmentRating{
				Condition: 4, Location: 6, Value: 8,
				NeighborhoodSafety: 3, NeighborhoodNoise: 5, NeighborhoodCommunity: 7,
			},
		},
		{
			Group:    model.RantGroup{ID: 1},
			Landlord: &model.LandlordRating{Fairness: 2, Responsiveness: 4, Maintenance: 6, PrivacyRespect: 8},
		},
	}
	sum := summarizePlace(rants)
	if sum.Landlord.Count != 2 {
		t.Fatalf("landlord count = %d, want 2", sum.Landlord.Count)
	}
	if got := sum.Landlord.SubScores["fairness"]; !almostEqual(got, 6) {
		t.Fatalf("fairness mean = %v, want 6", got)
	}
	if sum.Apartment.Count != 1 {
		t.Fatalf("apartment count = %d, want 1", sum.Apartment.Count)
	}
	if got := sum.Apartment.Overall; !almostEqual(got, 6) {
		t.Fatalf("apartment overall = %v, want 6", got)
	}
	if got := sum.Neighbors.SubScores["noise"]; !almostEqual(got, 5) {
		t.Fatalf("neighbor noise mean = %v, want 5", got)
	}
	if len(sum.Recent) != 2 {
		t.Fatalf("Recent = %d entries, want 2", len(sum.Recent))
	}
	if sum.Recent[0].Group.ID != 2 {
		t.Fatal("Recent must preserve newest-first order")
	}
}

func TestSummarizePlaceRecentCapped(t *testing.T) {
	var rants []repository.PlaceRant
	for i := 0; i < recentRantLimit+5; i++ {
		rants = append(rants, repository.PlaceRant{Group: model.RantGroup{ID: uint64(i + 1)}})
	}
	sum := summarizePlace(rants)
	if len(sum.Recent) != recentRantLimit {
		t.Fatalf("Recent = %d entries, want %d", len(sum.Recent), recentRantLimit)
	}
}

func TestSummarizePersonEmpty(t *testing.T) {
	sum := summarizePerson(nil)
	if sum.Average != nil {
		t.Fatal("zero ratings must yield absent average, not zero")
	}
	if sum.Count != 0 {
		t.Fatalf("count = %d, want 0", sum.Count)
	}
}

func TestSummarizePersonComposite(t *testing.T) {
	ratings := []model.RoommateRating{
		{Cleanliness: 8, Communication: 8, Reliability: 8, Respect: 8},
		{Cleanliness: 4, Communication: 4, Reliability: 4, Respect: 4},
	}
	sum := summarizePerson(ratings)
	if sum.Count != 2 {
		t.Fatalf("count = %d, want 2", sum.Count)
	}
	if sum.Average == nil || !almostEqual(*sum.Average, 6) {
		t.Fatalf("average = %v, want 6", sum.Average)
	}
}
