package domain

import "testing"

func TestValidTransition(t *testing.T) {
	testCases := []struct {
		from, to RideStatus
		want     bool
	}{
		{RideStatusPending, RideStatusAccepted, true},
		{RideStatusAccepted, RideStatusPickedUp, true},
		{RideStatusPickedUp, RideStatusOnTheWay, true},
		{RideStatusOnTheWay, RideStatusCompleted, true},
		{RideStatusPending, RideStatusCompleted, true}, // forward skips allowed
		{RideStatusAccepted, RideStatusPending, false},
		{RideStatusCompleted, RideStatusOnTheWay, false},
		{RideStatusPickedUp, RideStatusPickedUp, false},
		{"unknown", RideStatusAccepted, false},
		{RideStatusAccepted, "unknown", false},
	}

	for _, tc := range testCases {
		if got := ValidTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRideStatusValidAndTerminal(t *testing.T) {
	for _, s := range []RideStatus{RideStatusPending, RideStatusAccepted, RideStatusPickedUp, RideStatusOnTheWay, RideStatusCompleted} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if RideStatus("cancelled").Valid() {
		t.Error("expected unknown status to be invalid")
	}

	if RideStatusOnTheWay.Terminal() {
		t.Error("on_the_way is not terminal")
	}
	if !RideStatusCompleted.Terminal() {
		t.Error("completed is terminal")
	}
}
