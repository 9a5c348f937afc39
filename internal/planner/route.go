package planner

import "github.com/FACorreiaa/go-itinerary-engine/internal/types"

// orderRoute sequences one day's places. The start is the place whose
// declared time-of-day preference sorts earliest (input order breaks
// ties); from there each step greedily hops to the nearest unvisited
// place. Deliberately not globally optimal: no 2-opt, no backtracking.
func orderRoute(places []types.PlaceKnowledge) []types.PlaceKnowledge {
	if len(places) < 2 {
		return places
	}

	start := 0
	for i := 1; i < len(places); i++ {
		if preferenceFor(places[i].BestTimeToVisit) < preferenceFor(places[start].BestTimeToVisit) {
			start = i
		}
	}

	visited := make([]bool, len(places))
	visited[start] = true
	ordered := make([]types.PlaceKnowledge, 0, len(places))
	ordered = append(ordered, places[start])
	current := start

	for len(ordered) < len(places) {
		next := -1
		nextDist := 0.0
		for i := range places {
			if visited[i] {
				continue
			}
			d := haversineKm(places[current].Coordinates, places[i].Coordinates)
			if next == -1 || d < nextDist {
				next, nextDist = i, d
			}
		}
		visited[next] = true
		ordered = append(ordered, places[next])
		current = next
	}
	return ordered
}
