package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// planMeals inserts up to five fixed meal slots into a day, drawing from
// the nearby-restaurant candidates pooled across the day's places. A slot
// is only used when it falls within (or just outside) the day's actual
// activity span, and it may slide a bounded amount, forward first and
// then backward, to avoid overlapping scheduled activities. The
// returned list is re-sorted by start time.
func (c Config) planMeals(day int, activities []types.ScheduledActivity, places []types.PlaceKnowledge, costScale float64) []types.ScheduledActivity {
	if len(activities) == 0 {
		return activities
	}

	pool := poolRestaurants(places)
	if len(pool) == 0 {
		return activities
	}
	used := make(map[string]bool, len(pool))

	spanStart, spanEnd := activitySpan(activities)
	mealSeq := 0

	for _, slot := range c.MealSlots {
		nominal, ok := parseClock(slot.Start)
		if !ok {
			continue
		}
		if nominal < spanStart-c.MealSpanMarginMinutes || nominal > spanEnd+c.MealSpanMarginMinutes {
			continue
		}

		start, fits := c.fitMealStart(activities, nominal, slot.DurationMinutes)
		if !fits {
			continue
		}

		pick := bestCandidate(pool, used, slot.PreferCafe)
		if pick == nil {
			continue
		}
		used[pick.Name] = true

		cost := slot.BaseCost * costScale
		mealSeq++
		meal := types.ScheduledActivity{
			ID:   fmt.Sprintf("d%d-m%d", day, mealSeq),
			Place: types.PlaceSummary{
				Name:        pick.Name,
				Type:        types.PlaceTypeRestaurant,
				Coordinates: pick.Coordinates,
			},
			Day:             day,
			TimeSlot:        slotFor(start),
			StartTime:       formatClock(start),
			EndTime:         formatClock(start + slot.DurationMinutes),
			DurationMinutes: slot.DurationMinutes,
			Type:            types.ActivityMeal,
			FatigueImpact:   slot.FatigueImpact,
			EstimatedCost:   &cost,
		}
		activities = append(activities, meal)
		sortByStart(activities)
	}

	return activities
}

// poolRestaurants flattens the day's nearby-restaurant candidates,
// keeping the first occurrence of each name so selection is deterministic.
func poolRestaurants(places []types.PlaceKnowledge) []types.RestaurantOption {
	seen := make(map[string]bool)
	var pool []types.RestaurantOption
	for _, p := range places {
		for _, r := range p.NearbyRestaurants {
			if r.Name == "" || seen[r.Name] {
				continue
			}
			seen[r.Name] = true
			pool = append(pool, r)
		}
	}
	return pool
}

// bestCandidate picks the best unused restaurant by type preference
// first, then rating, then distance, with name as the final tie-break.
func bestCandidate(pool []types.RestaurantOption, used map[string]bool, preferCafe bool) *types.RestaurantOption {
	var best *types.RestaurantOption
	bestMatch := false
	for i := range pool {
		r := &pool[i]
		if used[r.Name] {
			continue
		}
		match := isCafeLike(r.Type) == preferCafe
		if best == nil {
			best, bestMatch = r, match
			continue
		}
		switch {
		case match != bestMatch:
			if match {
				best, bestMatch = r, match
			}
		case r.Rating != best.Rating:
			if r.Rating > best.Rating {
				best = r
			}
		case r.DistanceKm != best.DistanceKm:
			if r.DistanceKm < best.DistanceKm {
				best = r
			}
		case r.Name < best.Name:
			best = r
		}
	}
	return best
}

func isCafeLike(restaurantType string) bool {
	t := strings.ToLower(restaurantType)
	return strings.Contains(t, "cafe") || strings.Contains(t, "café") ||
		strings.Contains(t, "coffee") || strings.Contains(t, "bakery")
}

// fitMealStart slides the slot forward past any overlapping activity
// until it sits in a free gap. When the forward slide exceeds the
// configured bound it retries backward, which lets breakfast finish
// just ahead of a packed day's first activity. Failing both means the
// day has no room for this meal.
func (c Config) fitMealStart(activities []types.ScheduledActivity, nominal, duration int) (int, bool) {
	start := nominal
	moved := true
	for moved {
		moved = false
		for _, a := range activities {
			aStart, aEnd, ok := activityWindow(a)
			if !ok {
				continue
			}
			if start < aEnd && aStart < start+duration {
				start = aEnd
				moved = true
			}
		}
	}
	if start-nominal <= c.MaxMealShiftMinutes {
		return start, true
	}

	start = nominal
	moved = true
	for moved && start >= 0 {
		moved = false
		for _, a := range activities {
			aStart, aEnd, ok := activityWindow(a)
			if !ok {
				continue
			}
			if start < aEnd && aStart < start+duration {
				start = aStart - duration
				moved = true
			}
		}
	}
	if start >= 0 && nominal-start <= c.MaxMealShiftMinutes {
		return start, true
	}
	return 0, false
}

func activityWindow(a types.ScheduledActivity) (int, int, bool) {
	start, okS := parseClock(a.StartTime)
	end, okE := parseClock(a.EndTime)
	return start, end, okS && okE
}

// activitySpan returns the day's first start and last end in clock minutes.
func activitySpan(activities []types.ScheduledActivity) (int, int) {
	first, last := -1, -1
	for _, a := range activities {
		if s, ok := parseClock(a.StartTime); ok && (first == -1 || s < first) {
			first = s
		}
		if e, ok := parseClock(a.EndTime); ok && e > last {
			last = e
		}
	}
	return first, last
}

// sortByStart orders a day's activities by start time, keeping insertion
// order for identical starts.
func sortByStart(activities []types.ScheduledActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		si, _ := parseClock(activities[i].StartTime)
		sj, _ := parseClock(activities[j].StartTime)
		return si < sj
	})
}
