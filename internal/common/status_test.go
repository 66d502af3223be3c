package common

import "testing"

func TestPlatformFee(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{0, 0},
		{1000, 50},
		{10000, 500},
		{999, 49},
		{19, 0},
	}

	for _, tt := range tests {
		if got := PlatformFee(tt.amount); got != tt.want {
			t.Errorf("PlatformFee(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestNextTripStatus(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{TripPending, TripPickup},
		{TripPickup, TripInTransit},
		{TripInTransit, TripDelivered},
		{TripDelivered, ""},
		{TripConfirmed, ""},
		{TripDisputed, ""},
		{"bogus", ""},
	}

	for _, tt := range tests {
		if got := NextTripStatus(tt.current); got != tt.want {
			t.Errorf("NextTripStatus(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}
