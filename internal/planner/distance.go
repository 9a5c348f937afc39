package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// haversineKm calculates the great-circle distance between two coordinates
// in kilometers. Missing coordinates count as distance zero so that bad
// input degrades instead of failing.
func haversineKm(a, b types.Coordinates) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	const earthRadiusKm = 6371

	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lng * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// centroid returns the arithmetic center of a set of places.
func centroid(places []types.PlaceKnowledge) types.Coordinates {
	if len(places) == 0 {
		return types.Coordinates{}
	}
	var lat, lng float64
	for _, p := range places {
		lat += p.Coordinates.Lat
		lng += p.Coordinates.Lng
	}
	n := float64(len(places))
	return types.Coordinates{Lat: lat / n, Lng: lng / n}
}

// travelLegMinutes converts a leg distance into scheduled travel minutes,
// floored so that even adjacent places cost a minimum transfer.
func (c Config) travelLegMinutes(distanceKm float64) int {
	minutes := int(math.Round(distanceKm * c.TravelMinutesPerKm))
	if minutes < c.MinTravelMinutes {
		minutes = c.MinTravelMinutes
	}
	return minutes
}

// matrixMinutes converts a matrix distance into travel minutes at the
// configured average speed. Used for packing estimates only.
func (c Config) matrixMinutes(distanceKm float64) int {
	if c.AverageSpeedKmh <= 0 {
		return 0
	}
	return int(math.Round(distanceKm / c.AverageSpeedKmh * 60))
}

// travelMode labels a leg by distance.
func (c Config) travelMode(distanceKm float64) string {
	if distanceKm < c.TravelModeSwitchKm {
		return "auto"
	}
	return "car"
}

// parseClock converts "HH:MM" to minutes since midnight. Malformed input
// yields ok=false and the caller falls back to a default.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// formatClock renders minutes since midnight as "HH:MM". Late-night
// activities may legitimately end past midnight; the hour field keeps
// counting (e.g. "24:30") so string ordering still matches time ordering
// within a day.
func formatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseWindow parses a "HH:MM-HH:MM" peak-hours window.
func parseWindow(s string) (start, end int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, okStart := parseClock(parts[0])
	end, okEnd := parseClock(parts[1])
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return start, end, true
}
