package service

import (
	"errors"
	"strings"
	"testing"
)

func validCombinedInput() CombinedRantInput {
	ext := "place-abc"
	return CombinedRantInput{
		RaterID:         1,
		LandlordPhone:   "0501234567",
		PlaceExternalID: &ext,
		PeriodLabel:     "2023-2024",
		Landlord:        LandlordScores{Fairness: 5, Responsiveness: 5, Maintenance: 5, PrivacyRespect: 5},
		Apartment: ApartmentScores{
			Condition: 5, Location: 5, Value: 5,
			NeighborhoodSafety: 5, NeighborhoodNoise: 5, NeighborhoodCommunity: 5,
		},
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	return ve.Field
}

func TestValidateCombined(t *testing.T) {
	s := &RantService{}

	in := validCombinedInput()
	if err := s.validateCombined(&in); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	in = validCombinedInput()
	in.LandlordPhone = "   "
	if f := fieldOf(t, s.validateCombined(&in)); f != "landlordPhone" {
		t.Fatalf("field = %q, want landlordPhone", f)
	}

	in = validCombinedInput()
	in.PlaceExternalID = nil
	if f := fieldOf(t, s.validateCombined(&in)); f != "placeAddress" {
		t.Fatalf("field = %q, want placeAddress", f)
	}

	in = validCombinedInput()
	in.PeriodLabel = ""
	if f := fieldOf(t, s.validateCombined(&in)); f != "period" {
		t.Fatalf("field = %q, want period", f)
	}

	in = validCombinedInput()
	in.Landlord.Fairness = 0
	if err := s.validateCombined(&in); err == nil {
		t.Fatal("zero score accepted")
	}

	in = validCombinedInput()
	in.Apartment.Value = 11
	if err := s.validateCombined(&in); err == nil {
		t.Fatal("out-of-range score accepted")
	}

	in = validCombinedInput()
	long := strings.Repeat("x", 301)
	in.Comment = &long
	if f := fieldOf(t, s.validateCombined(&in)); f != "comment" {
		t.Fatalf("field = %q, want comment", f)
	}
}

func TestValidateRoommateEitherOr(t *testing.T) {
	target := uint64(2)
	hint := "Dave from the old flat"
	empty := "  "
	base := RoommateRantInput{
		RaterID: 1, Cleanliness: 5, Communication: 5, Reliability: 5, Respect: 5,
	}

	in := base
	if err := validateRoommate(&in); err == nil {
		t.Fatal("neither target nor hint accepted")
	}

	in = base
	in.TargetUserID = &target
	in.TargetHint = &hint
	if err := validateRoommate(&in); err == nil {
		t.Fatal("both target and hint accepted")
	}

	in = base
	in.TargetUserID = &target
	if err := validateRoommate(&in); err != nil {
		t.Fatalf("target-only input rejected: %v", err)
	}

	in = base
	in.TargetHint = &hint
	if err := validateRoommate(&in); err != nil {
		t.Fatalf("hint-only input rejected: %v", err)
	}

	// A blank hint is no hint.
	in = base
	in.TargetHint = &empty
	if err := validateRoommate(&in); err == nil {
		t.Fatal("blank hint accepted as a target")
	}

	in = base
	self := uint64(1)
	in.TargetUserID = &self
	if err := validateRoommate(&in); err == nil {
		t.Fatal("self-rating accepted")
	}

	in = base
	in.TargetUserID = &target
	in.Respect = 0
	if err := validateRoommate(&in); err == nil {
		t.Fatal("zero score accepted")
	}
}
