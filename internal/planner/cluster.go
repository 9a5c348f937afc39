package planner

import (
	"sort"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// Region is a set of places grouped because they lie within the region
// distance threshold of each other.
type Region struct {
	Places   []types.PlaceKnowledge
	Centroid types.Coordinates
}

// clusterRegions performs single-link agglomeration: pick the first
// unassigned place, pull in every other unassigned place within radiusKm,
// repeat. Deterministic given identical input ordering. Regions are
// returned largest-first (ties keep formation order).
func clusterRegions(places []types.PlaceKnowledge, radiusKm float64) []Region {
	assigned := make([]bool, len(places))
	var regions []Region

	for i := range places {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []types.PlaceKnowledge{places[i]}
		// Single-link: keep sweeping until no unassigned place is within
		// the radius of any member.
		grew := true
		for grew {
			grew = false
			for j := range places {
				if assigned[j] {
					continue
				}
				for _, m := range members {
					if haversineKm(m.Coordinates, places[j].Coordinates) <= radiusKm {
						assigned[j] = true
						members = append(members, places[j])
						grew = true
						break
					}
				}
			}
		}
		regions = append(regions, Region{Places: members, Centroid: centroid(members)})
	}

	sort.SliceStable(regions, func(a, b int) bool {
		return len(regions[a].Places) > len(regions[b].Places)
	})
	return regions
}

// fitRegionsToDays reshapes a region list to exactly numDays groups.
// Excess regions merge into their nearest-centroid neighbor; a shortfall
// splits the largest regions until the counts match (or no region can
// split further). The result may be shorter than numDays when there are
// fewer places than days.
func fitRegionsToDays(regions []Region, numDays int) []Region {
	if numDays < 1 || len(regions) == 0 {
		return nil
	}

	// Merge: fold the smallest region into whichever other region's
	// centroid is nearest, until the count fits.
	for len(regions) > numDays {
		smallest := len(regions) - 1
		for i := range regions {
			if len(regions[i].Places) < len(regions[smallest].Places) {
				smallest = i
			}
		}
		nearest := -1
		best := 0.0
		for i := range regions {
			if i == smallest {
				continue
			}
			d := haversineKm(regions[smallest].Centroid, regions[i].Centroid)
			if nearest == -1 || d < best {
				nearest, best = i, d
			}
		}
		merged := append([]types.PlaceKnowledge{}, regions[nearest].Places...)
		merged = append(merged, regions[smallest].Places...)
		regions[nearest] = Region{Places: merged, Centroid: centroid(merged)}
		regions = append(regions[:smallest], regions[smallest+1:]...)
	}

	// Split: grow a sub-cluster out of the largest region until every day
	// slot is filled. Regions of a single place cannot split, which bounds
	// the loop.
	for len(regions) < numDays {
		largest := 0
		for i := range regions {
			if len(regions[i].Places) > len(regions[largest].Places) {
				largest = i
			}
		}
		if len(regions[largest].Places) < 2 {
			break
		}
		a, b := splitRegion(regions[largest])
		regions[largest] = a
		regions = append(regions, b)
	}

	sort.SliceStable(regions, func(a, b int) bool {
		return len(regions[a].Places) > len(regions[b].Places)
	})
	return regions
}

// splitRegion divides a region in two using nearest-neighbor centroid
// growth: seed with the place farthest from the region centroid, then
// repeatedly absorb the remaining place nearest to the growing half's
// centroid until it holds half the members.
func splitRegion(r Region) (Region, Region) {
	seed := 0
	bestDist := -1.0
	for i, p := range r.Places {
		if d := haversineKm(p.Coordinates, r.Centroid); d > bestDist {
			seed, bestDist = i, d
		}
	}

	target := len(r.Places) / 2
	if target < 1 {
		target = 1
	}

	taken := make([]bool, len(r.Places))
	taken[seed] = true
	grown := []types.PlaceKnowledge{r.Places[seed]}

	for len(grown) < target {
		c := centroid(grown)
		next := -1
		nextDist := 0.0
		for i, p := range r.Places {
			if taken[i] {
				continue
			}
			d := haversineKm(p.Coordinates, c)
			if next == -1 || d < nextDist {
				next, nextDist = i, d
			}
		}
		if next == -1 {
			break
		}
		taken[next] = true
		grown = append(grown, r.Places[next])
	}

	var rest []types.PlaceKnowledge
	for i, p := range r.Places {
		if !taken[i] {
			rest = append(rest, p)
		}
	}
	return Region{Places: grown, Centroid: centroid(grown)},
		Region{Places: rest, Centroid: centroid(rest)}
}
