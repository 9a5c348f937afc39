package planner

import (
	"sort"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// binPacker assigns places to trip days. Multi-region inputs are seeded
// geographically; everything else goes through first-fit-decreasing over
// micro-clusters followed by bounded load rebalancing.
type binPacker struct {
	cfg    Config
	places []types.PlaceKnowledge
	matrix [][]int        // pairwise travel minutes at the packing speed
	index  map[string]int // place name -> matrix row
}

func newBinPacker(cfg Config, places []types.PlaceKnowledge) *binPacker {
	bp := &binPacker{
		cfg:    cfg,
		places: places,
		index:  make(map[string]int, len(places)),
	}
	bp.matrix = make([][]int, len(places))
	for i := range places {
		bp.index[places[i].Name] = i
		bp.matrix[i] = make([]int, len(places))
		for j := range places {
			if i == j {
				continue
			}
			bp.matrix[i][j] = cfg.matrixMinutes(haversineKm(places[i].Coordinates, places[j].Coordinates))
		}
	}
	return bp
}

func (bp *binPacker) travelBetween(a, b types.PlaceKnowledge) int {
	i, okA := bp.index[a.Name]
	j, okB := bp.index[b.Name]
	if !okA || !okB {
		return 0
	}
	return bp.matrix[i][j]
}

// pack partitions the places across numDays bins and orders each bin
// into a visiting sequence. Zero days or empty input yields empty bins;
// a single day receives every place with no clustering step.
func (bp *binPacker) pack(numDays int) [][]types.PlaceKnowledge {
	if numDays <= 0 || len(bp.places) == 0 {
		bins := make([][]types.PlaceKnowledge, 0)
		for d := 0; d < numDays; d++ {
			bins = append(bins, nil)
		}
		return bins
	}

	var bins [][]types.PlaceKnowledge
	switch {
	case numDays == 1:
		bins = [][]types.PlaceKnowledge{append([]types.PlaceKnowledge{}, bp.places...)}
	default:
		regions := clusterRegions(bp.places, bp.cfg.RegionRadiusKm)
		if len(regions) > 1 {
			bins = bp.binsFromRegions(regions, numDays)
		} else {
			bins = bp.firstFitDecreasing(numDays)
		}
		bp.rebalance(bins)
	}

	for d := range bins {
		bins[d] = orderRoute(bins[d])
	}
	return bins
}

// binsFromRegions turns geographically disjoint regions into day bins,
// merging or splitting regions until they fill the available days.
func (bp *binPacker) binsFromRegions(regions []Region, numDays int) [][]types.PlaceKnowledge {
	fitted := fitRegionsToDays(regions, numDays)
	bins := make([][]types.PlaceKnowledge, numDays)
	for i, r := range fitted {
		if i >= numDays {
			break
		}
		bins[i] = r.Places
	}
	return bins
}

// microClusters groups places via single-link agglomeration at the
// tighter travel-minute threshold, preserving input order within and
// across clusters.
func (bp *binPacker) microClusters() [][]int {
	threshold := bp.cfg.MicroClusterTravelMinutes
	assigned := make([]bool, len(bp.places))
	var clusters [][]int

	for i := range bp.places {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []int{i}
		grew := true
		for grew {
			grew = false
			for j := range bp.places {
				if assigned[j] {
					continue
				}
				for _, m := range members {
					if bp.matrix[m][j] <= threshold {
						assigned[j] = true
						members = append(members, j)
						grew = true
						break
					}
				}
			}
		}
		clusters = append(clusters, members)
	}
	return clusters
}

// clusterMinutes is a micro-cluster's total required time: member
// durations plus sequential intra-cluster travel.
func (bp *binPacker) clusterMinutes(cluster []int) int {
	total := 0
	for k, idx := range cluster {
		total += bp.places[idx].TypicalDuration
		if k > 0 {
			total += bp.matrix[cluster[k-1]][idx]
		}
	}
	return total
}

// firstFitDecreasing packs micro-clusters into day bins largest-first.
// Each cluster lands on the day with the most remaining budget that can
// still hold it (including the travel hop from that day's last assigned
// place); when nothing fits it overflows onto the least-loaded day.
func (bp *binPacker) firstFitDecreasing(numDays int) [][]types.PlaceKnowledge {
	clusters := bp.microClusters()
	sort.SliceStable(clusters, func(a, b int) bool {
		return bp.clusterMinutes(clusters[a]) > bp.clusterMinutes(clusters[b])
	})

	budget := bp.cfg.DailyTimeBudgetMinutes
	bins := make([][]types.PlaceKnowledge, numDays)
	loads := make([]int, numDays)

	for _, cluster := range clusters {
		need := bp.clusterMinutes(cluster)
		first := bp.places[cluster[0]]

		best := -1
		bestRemaining := 0
		for d := 0; d < numDays; d++ {
			hop := 0
			if n := len(bins[d]); n > 0 {
				hop = bp.travelBetween(bins[d][n-1], first)
			}
			if loads[d]+need+hop > budget {
				continue
			}
			remaining := budget - loads[d]
			if best == -1 || remaining > bestRemaining {
				best, bestRemaining = d, remaining
			}
		}
		if best == -1 {
			// Overflow allowed: least-loaded day takes it regardless of fit.
			best = 0
			for d := 1; d < numDays; d++ {
				if loads[d] < loads[best] {
					best = d
				}
			}
		}

		hop := 0
		if n := len(bins[best]); n > 0 {
			hop = bp.travelBetween(bins[best][n-1], first)
		}
		for _, idx := range cluster {
			bins[best] = append(bins[best], bp.places[idx])
		}
		loads[best] += need + hop
	}
	return bins
}

// binMinutes is a bin's activity time plus sequential travel time in the
// bin's current order.
func (bp *binPacker) binMinutes(bin []types.PlaceKnowledge) int {
	total := 0
	for i, p := range bin {
		total += p.TypicalDuration
		if i > 0 {
			total += bp.travelBetween(bin[i-1], p)
		}
	}
	return total
}

// rebalance runs up to the configured number of iterations moving one
// place at a time from the most-loaded day toward the least-loaded day.
// A move must shrink or keep the overall scheduled total; otherwise it is
// reverted and rebalancing stops. The iteration cap guarantees
// termination on pathological inputs.
func (bp *binPacker) rebalance(bins [][]types.PlaceKnowledge) {
	budget := bp.cfg.DailyTimeBudgetMinutes
	ceiling := bp.cfg.OverloadCeilingMinutes

	for iter := 0; iter < bp.cfg.RebalanceMaxIterations; iter++ {
		most, least := 0, 0
		loads := make([]int, len(bins))
		for d := range bins {
			loads[d] = bp.binMinutes(bins[d])
			if loads[d] > loads[most] {
				most = d
			}
			if loads[d] < loads[least] {
				least = d
			}
		}
		if most == least || loads[most] <= budget+ceiling {
			return
		}
		// A single place alone cannot be rebalanced away.
		if len(bins[most]) < 2 {
			return
		}

		target := centroid(bins[least])
		remaining := budget - loads[least]
		pick := -1
		pickDist := 0.0
		for i, p := range bins[most] {
			if p.TypicalDuration > remaining {
				continue
			}
			d := haversineKm(p.Coordinates, target)
			if pick == -1 || d < pickDist {
				pick, pickDist = i, d
			}
		}
		if pick == -1 {
			return
		}

		before := 0
		for d := range loads {
			before += loads[d]
		}

		moved := bins[most][pick]
		bins[most] = append(append([]types.PlaceKnowledge{}, bins[most][:pick]...), bins[most][pick+1:]...)
		bins[least] = append(bins[least], moved)

		after := 0
		for d := range bins {
			after += bp.binMinutes(bins[d])
		}
		if after > before {
			// Moving made the trip worse overall; undo and stop.
			bins[least] = bins[least][:len(bins[least])-1]
			rest := append([]types.PlaceKnowledge{}, bins[most][pick:]...)
			bins[most] = append(bins[most][:pick], moved)
			bins[most] = append(bins[most], rest...)
			return
		}
	}
}
