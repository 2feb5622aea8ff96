package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

// RantHandler accepts rating submissions and serves the read-side
// summaries.
type RantHandler struct {
	Rants   *service.RantService
	Ratings *service.RatingService
}

func NewRantHandler(rants *service.RantService, ratings *service.RatingService) *RantHandler {
	return &RantHandler{Rants: rants, Ratings: ratings}
}

type combinedRantReq struct {
	LandlordPhone      string  `json:"landlord_phone"`
	PlaceExternalID    *string `json:"place_external_id"`
	PlaceAddress       string  `json:"place_address"`
	PlaceCity          string  `json:"place_city"`
	PlaceLat           float64 `json:"place_lat"`
	PlaceLng           float64 `json:"place_lng"`
	Period             string  `json:"period"`
	IsCurrentResidence bool    `json:"is_current_residence"`
	Comment            *string `json:"comment"`

	Landlord struct {
		Fairness       uint8 `json:"fairness"`
		Responsiveness uint8 `json:"responsiveness"`
		Maintenance    uint8 `json:"maintenance"`
		PrivacyRespect uint8 `json:"privacy_respect"`
	} `json:"landlord"`
	Apartment struct {
		Condition             uint8 `json:"condition"`
		Location              uint8 `json:"location"`
		Value                 uint8 `json:"value"`
		NeighborhoodSafety    uint8 `json:"neighborhood_safety"`
		NeighborhoodNoise     uint8 `json:"neighborhood_noise"`
		NeighborhoodCommunity uint8 `json:"neighborhood_community"`
	} `json:"apartment"`
}

type roommateRantReq struct {
	TargetUserID  *uint64 `json:"target_user_id"`
	TargetHint    *string `json:"target_hint"`
	Cleanliness   uint8   `json:"cleanliness"`
	Communication uint8   `json:"communication"`
	Reliability   uint8   `json:"reliability"`
	Respect       uint8   `json:"respect"`
	Comment       *string `json:"comment"`
}

// SubmitCombined accepts a combined landlord+apartment rant.  The
// landlord's raw phone number lives only inside this request; the
// response carries the ids the submission resolved to.
func (h *RantHandler) SubmitCombined(c echo.Context) error {
	var req combinedRantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	group, err := h.Rants.SubmitCombined(ctx, service.CombinedRantInput{
		RaterID:            getUserID(c),
		LandlordPhone:      req.LandlordPhone,
		PlaceExternalID:    req.PlaceExternalID,
		PlaceAddress:       req.PlaceAddress,
		PlaceCity:          req.PlaceCity,
		PlaceLat:           req.PlaceLat,
		PlaceLng:           req.PlaceLng,
		PeriodLabel:        req.Period,
		IsCurrentResidence: req.IsCurrentResidence,
		Comment:            req.Comment,
		Landlord: service.LandlordScores{
			Fairness:       req.Landlord.Fairness,
			Responsiveness: req.Landlord.Responsiveness,
			Maintenance:    req.Landlord.Maintenance,
			PrivacyRespect: req.Landlord.PrivacyRespect,
		},
		Apartment: service.ApartmentScores{
			Condition:             req.Apartment.Condition,
			Location:              req.Apartment.Location,
			Value:                 req.Apartment.Value,
			NeighborhoodSafety:    req.Apartment.NeighborhoodSafety,
			NeighborhoodNoise:     req.Apartment.NeighborhoodNoise,
			NeighborhoodCommunity: req.Apartment.NeighborhoodCommunity,
		},
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"rant_group_id": group.ID,
		"landlord_id":   group.LandlordID,
		"place_id":      group.PlaceID,
		"created_at":    group.CreatedAt,
	})
}

// SubmitRoommate accepts a roommate rating.
func (h *RantHandler) SubmitRoommate(c echo.Context) error {
	var req roommateRantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rating, err := h.Rants.SubmitRoommate(ctx, service.RoommateRantInput{
		RaterID:       getUserID(c),
		TargetUserID:  req.TargetUserID,
		TargetHint:    req.TargetHint,
		Cleanliness:   req.Cleanliness,
		Communication: req.Communication,
		Reliability:   req.Reliability,
		Respect:       req.Respect,
		Comment:       req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"rating_id": rating.ID})
}

// PlaceSummary returns the aggregated ratings of one place.
func (h *RantHandler) PlaceSummary(c echo.Context) error {
	placeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sum, err := h.Ratings.SummarizeForPlace(ctx, placeID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"landlord":  breakdownJSON(sum.Landlord),
		"apartment": breakdownJSON(sum.Apartment),
		"neighbors": breakdownJSON(sum.Neighbors),
		"recent":    recentJSON(sum.Recent),
	})
}

// PersonSummary returns the aggregated roommate ratings of one user.
func (h *RantHandler) PersonSummary(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sum, err := h.Ratings.SummarizeForPerson(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"average": sum.Average,
		"count":   sum.Count,
	})
}

// breakdownJSON renders a category aggregate, keeping the distinction
// between "no data yet" (null) and real zeros.
func breakdownJSON(b *service.Breakdown) any {
	if b == nil {
		return nil
	}
	return echo.Map{
		"overall":    b.Overall,
		"sub_scores": b.SubScores,
		"count":      b.Count,
	}
}

func recentJSON(recent []service.RecentRant) []echo.Map {
	out := make([]echo.Map, 0, len(recent))
	for _, r := range recent {
		entry := echo.Map{
			"rant_group_id":        r.Group.ID,
			"period":               r.Group.PeriodLabel,
			"is_current_residence": r.Group.IsCurrentResidence,
			"comment":              r.Group.Comment,
			"created_at":           r.Group.CreatedAt,
		}
		if r.LandlordScores != nil {
			entry["landlord"] = echo.Map{
				"fairness":        r.LandlordScores.Fairness,
				"responsiveness":  r.LandlordScores.Responsiveness,
				"maintenance":     r.LandlordScores.Maintenance,
				"privacy_respect": r.LandlordScores.PrivacyRespect,
			}
		}
		if r.ApartmentScores != nil {
			entry["apartment"] = echo.Map{
				"condition":              r.ApartmentScores.Condition,
				"location":               r.ApartmentScores.Location,
				"value":                  r.ApartmentScores.Value,
				"neighborhood_safety":    r.ApartmentScores.NeighborhoodSafety,
				"neighborhood_noise":     r.ApartmentScores.NeighborhoodNoise,
				"neighborhood_community": r.ApartmentScores.NeighborhoodCommunity,
			}
		}
		out = append(out, entry)
	}
	return out
}
