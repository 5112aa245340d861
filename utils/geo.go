package utils

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Per-kilometer CO2 factors (kg) and average speeds (km/h) per
// transport mode, used when a route omits measured figures.
var transportProfiles = map[string]struct {
	co2PerKm float64
	speedKmh float64
}{
	"truck": {co2PerKm: 0.092, speedKmh: 65},
	"train": {co2PerKm: 0.028, speedKmh: 80},
	"ship":  {co2PerKm: 0.012, speedKmh: 35},
	"plane": {co2PerKm: 0.850, speedKmh: 750},
}

const defaultTransportMode = "truck"

// DistanceKm returns the haversine distance between two lat/lng pairs.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	a := orb.Point{lng1, lat1}
	b := orb.Point{lng2, lat2}
	return geo.DistanceHaversine(a, b) / 1000
}

// NormalizeTransportMode maps free-text transport labels onto a known
// profile. Multi-value input ("truck, train") resolves to its first
// recognized mode; anything unrecognized falls back to truck.
func NormalizeTransportMode(mode string) string {
	for _, part := range strings.Split(strings.ToLower(mode), ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.Contains(part, "truck"), strings.Contains(part, "road"):
			return "truck"
		case strings.Contains(part, "train"), strings.Contains(part, "rail"):
			return "train"
		case strings.Contains(part, "ship"), strings.Contains(part, "sea"), strings.Contains(part, "boat"):
			return "ship"
		case strings.Contains(part, "plane"), strings.Contains(part, "air"):
			return "plane"
		}
	}
	return defaultTransportMode
}

// EstimateCO2 returns the emission estimate in kg for a distance and
// transport mode.
func EstimateCO2(distanceKm float64, mode string) float64 {
	return distanceKm * transportProfiles[NormalizeTransportMode(mode)].co2PerKm
}

// EstimateTravelHours returns the expected transit time in hours.
func EstimateTravelHours(distanceKm float64, mode string) float64 {
	p := transportProfiles[NormalizeTransportMode(mode)]
	if p.speedKmh == 0 {
		return 0
	}
	return distanceKm / p.speedKmh
}
