package utils

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Montreal to Toronto, roughly 505 km great-circle.
	got := DistanceKm(45.5017, -73.5673, 43.6532, -79.3832)
	if got < 495 || got > 515 {
		t.Errorf("DistanceKm = %v, want ~505", got)
	}

	if d := DistanceKm(45.5, -73.5, 45.5, -73.5); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestNormalizeTransportMode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Truck", "truck"},
		{"road freight", "truck"},
		{"Rail", "train"},
		{"sea freight, truck", "ship"},
		{"Air Cargo", "plane"},
		{"donkey cart", "truck"},
		{"", "truck"},
	}
	for _, tt := range tests {
		if got := NormalizeTransportMode(tt.in); got != tt.want {
			t.Errorf("NormalizeTransportMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEstimateCO2OrderedByMode(t *testing.T) {
	const dist = 1000.0
	ship := EstimateCO2(dist, "ship")
	train := EstimateCO2(dist, "train")
	truck := EstimateCO2(dist, "truck")
	plane := EstimateCO2(dist, "plane")
	if !(ship < train && train < truck && truck < plane) {
		t.Errorf("emission ordering wrong: ship=%v train=%v truck=%v plane=%v", ship, train, truck, plane)
	}
}

func TestEstimateTravelHours(t *testing.T) {
	got := EstimateTravelHours(650, "truck")
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("truck over 650km = %v hours, want 10", got)
	}
}
