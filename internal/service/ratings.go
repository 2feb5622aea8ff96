package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
)

// RatingService aggregates rating records at read time.  There is no
// rollup table: every summary is computed from the rows as they are,
// which keeps partial data honest — a rant group missing one child
// simply contributes the other.
type RatingService struct {
	Users  *repository.UserRepo
	Places *repository.PlaceRepo
	Rants  *repository.RantRepo
}

func NewRatingService(users *repository.UserRepo, places *repository.PlaceRepo, rants *repository.RantRepo) *RatingService {
	if users == nil || places == nil || rants == nil {
		panic("nil dependency passed to NewRatingService")
	}
	return &RatingService{Users: users, Places: places, Rants: rants}
}

// Breakdown is one rating category's aggregate: the arithmetic mean per
// sub-score, the overall mean across all sub-scores, and how many
// ratings contributed.  A category with zero ratings is represented as
// an absent (nil) *Breakdown, never as zeros — "no data yet" and
// "rated 0" must stay distinguishable.
type Breakdown struct {
	Overall   float64
	SubScores map[string]float64
	Count     int
}

// RecentRant is one entry of a place summary's recent list.  Either
// score set is nil when the rant group lacks that child.
type RecentRant struct {
	Group           model.RantGroup
	LandlordScores  *model.LandlordRating
	ApartmentScores *model.ApartmentRating
}

// PlaceSummary aggregates everything submitted about one address.
type PlaceSummary struct {
	Landlord  *Breakdown
	Apartment *Breakdown
	Neighbors *Breakdown
	Recent    []RecentRant
}

// PersonSummary aggregates roommate ratings targeting one user.
// Average is nil when Count is zero.
type PersonSummary struct {
	Average *float64
	Count   int
}

// recentRantLimit caps the recent list of a place summary.
const recentRantLimit = 10

// SummarizeForPlace builds the rating summary of a place.
func (s *RatingService) SummarizeForPlace(ctx context.Context, placeID uint64) (*PlaceSummary, error) {
	if _, err := s.Places.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	rants, err := s.Rants.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return summarizePlace(rants), nil
}

// SummarizeForPerson builds the roommate-rating summary of a user.
func (s *RatingService) SummarizeForPerson(ctx context.Context, userID uint64) (*PersonSummary, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	ratings, err := s.Rants.ListRoommateRatingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarizePerson(ratings), nil
}

// summarizePlace is the pure aggregation over a place's rant rows,
// which arrive newest first.
func summarizePlace(rants []repository.PlaceRant) *PlaceSummary {
	landlord := newAccumulator("fairness", "responsiveness", "maintenance", "privacy_respect")
	apartment := newAccumulator("condition", "location", "value")
	neighbors := newAccumulator("safety", "noise", "community")

	sum := &PlaceSummary{Recent: make([]RecentRant, 0, recentRantLimit)}
	for _, pr := range rants {
		if pr.Landlord != nil {
			landlord.add(map[string]uint8{
				"fairness":        pr.Landlord.Fairness,
				"responsiveness":  pr.Landlord.Responsiveness,
				"maintenance":     pr.Landlord.Maintenance,
				"privacy_respect": pr.Landlord.PrivacyRespect,
			})
		}
		if pr.Apartment != nil {
			apartment.add(map[string]uint8{
				"condition": pr.Apartment.Condition,
				"location":  pr.Apartment.Location,
				"value":     pr.Apartment.Value,
			})
			neighbors.add(map[string]uint8{
				"safety":    pr.Apartment.NeighborhoodSafety,
				"noise":     pr.Apartment.NeighborhoodNoise,
				"community": pr.Apartment.NeighborhoodCommunity,
			})
		}
		if len(sum.Recent) < recentRantLimit {
			sum.Recent = append(sum.Recent, RecentRant{
				Group:           pr.Group,
				LandlordScores:  pr.Landlord,
				ApartmentScores: pr.Apartment,
			})
		}
	}
	sum.Landlord = landlord.breakdown()
	sum.Apartment = apartment.breakdown()
	sum.Neighbors = neighbors.breakdown()
	return sum
}

// summarizePerson is the pure aggregation over roommate ratings: the
// mean of the equally weighted composite of all four sub-scores.
func summarizePerson(ratings []model.RoommateRating) *PersonSummary {
	if len(ratings) == 0 {
		return &PersonSummary{Count: 0}
	}
	var total float64
	for _, r := range ratings {
		composite := float64(r.Cleanliness) + float64(r.Communication) +
			float64(r.Reliability) + float64(r.Respect)
		total += composite / 4
	}
	avg := total / float64(len(ratings))
	return &PersonSummary{Average: &avg, Count: len(ratings)}
}

// accumulator collects per-sub-score sums for one category.
type accumulator struct {
	keys  []string
	sums  map[string]float64
	count int
}

func newAccumulator(keys ...string) *accumulator {
	return &accumulator{keys: keys, sums: make(map[string]float64, len(keys))}
}

func (a *accumulator) add(scores map[string]uint8) {
	for _, k := range a.keys {
		a.sums[k] += float64(scores[k])
	}
	a.count++
}

// breakdown finalizes the means, or nil when nothing was added.
func (a *accumulator) breakdown() *Breakdown {
	if a.count == 0 {
		return nil
	}
	subs := make(map[string]float64, len(a.keys))
	var overall float64
	for _, k := range a.keys {
		mean := a.sums[k] / float64(a.count)
		subs[k] = mean
		overall += mean
	}
	return &Breakdown{
		Overall:   overall / float64(len(a.keys)),
		SubScores: subs,
		Count:     a.count,
	}
}
