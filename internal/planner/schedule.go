package planner

import (
	"fmt"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// daySchedule is the intermediate result of building one day before meal
// insertion and aggregation.
type daySchedule struct {
	Activities []types.ScheduledActivity
	Dropped    []string // names of places that could not be scheduled
}

// buildDaySchedule converts an ordered place list into timed activities,
// inserting travel legs and enforcing opening hours, time-of-day windows,
// the day cutoff and the hard overload ceiling. Places that cannot be
// scheduled are dropped from the day, not rescheduled (deliberate policy:
// they simply do not appear in the output).
func (c Config) buildDaySchedule(day int, places []types.PlaceKnowledge, costScale float64) daySchedule {
	dayStart, ok := parseClock(c.DayStart)
	if !ok {
		dayStart = 8 * 60
	}
	cutoff, ok := parseClock(c.DayCutoff)
	if !ok {
		cutoff = 23 * 60
	}
	hardCeiling := c.DailyTimeBudgetMinutes + c.OverloadCeilingMinutes

	var sched daySchedule
	clock := dayStart
	scheduled := 0 // activity + travel minutes committed so far
	seq := 0
	var prev *types.PlaceKnowledge

	for i := range places {
		place := places[i]
		if place.Type == types.PlaceTypeAccommodation {
			continue
		}

		travelMin := 0
		distKm := 0.0
		if prev != nil {
			distKm = haversineKm(prev.Coordinates, place.Coordinates)
			travelMin = c.travelLegMinutes(distKm)
		}

		start := clock + travelMin
		reason := ""
		if windowStart, okWin := preferredWindowStart(preferenceFor(place.BestTimeToVisit)); okWin {
			if start < windowStart {
				start = windowStart
			}
			reason = place.BestTimeToVisit
		}
		var closeMin int
		hasHours := false
		if place.OpeningHours != nil {
			if openMin, okOpen := parseClock(place.OpeningHours.Open); okOpen && start < openMin {
				start = openMin
			}
			if cm, okClose := parseClock(place.OpeningHours.Close); okClose {
				closeMin, hasHours = cm, true
			}
		}

		end := start + place.TypicalDuration
		switch {
		case hasHours && end > closeMin:
			sched.Dropped = append(sched.Dropped, place.Name)
			continue
		case start > cutoff && place.Type != types.PlaceTypeNightlife:
			sched.Dropped = append(sched.Dropped, place.Name)
			continue
		case prev != nil && scheduled+travelMin+place.TypicalDuration > hardCeiling:
			// The day is full; forcing the place in would breach the hard
			// ceiling, so it appears nowhere instead.
			sched.Dropped = append(sched.Dropped, place.Name)
			continue
		}

		if prev != nil {
			seq++
			sched.Activities = append(sched.Activities, types.ScheduledActivity{
				ID:              fmt.Sprintf("d%d-a%d", day, seq),
				Place:           place.Summary(),
				Day:             day,
				TimeSlot:        slotFor(start - travelMin),
				StartTime:       formatClock(start - travelMin),
				EndTime:         formatClock(start),
				DurationMinutes: travelMin,
				Type:            types.ActivityTravel,
				TravelFromPrev: &types.TravelLeg{
					DistanceKm:      distKm,
					DurationMinutes: travelMin,
					Mode:            c.travelMode(distKm),
				},
				FatigueImpact: (travelMin + 5) / 10,
			})
		}

		cost := c.estimateCost(place, costScale)
		seq++
		sched.Activities = append(sched.Activities, types.ScheduledActivity{
			ID:              fmt.Sprintf("d%d-a%d", day, seq),
			Place:           place.Summary(),
			Day:             day,
			TimeSlot:        slotFor(start),
			StartTime:       formatClock(start),
			EndTime:         formatClock(end),
			DurationMinutes: place.TypicalDuration,
			Type:            types.ActivityVisit,
			FatigueImpact:   c.fatigueFor(place.Type),
			CrowdLevel:      c.crowdLevelAt(place, start),
			BestTimeReason:  reason,
			EstimatedCost:   &cost,
		})

		clock = end + c.VisitBufferMinutes
		scheduled += travelMin + place.TypicalDuration
		prev = &places[i]
	}

	return sched
}

// estimateCost returns the visit's estimated cost: the declared entry fee
// when present, otherwise the per-type default scaled against the trip's
// per-day budget share.
func (c Config) estimateCost(place types.PlaceKnowledge, costScale float64) float64 {
	if place.EntryFee != nil {
		return *place.EntryFee
	}
	return c.costFor(place.Type) * costScale
}

// crowdLevelAt grades the start time against the place's declared peak
// windows: high inside a window, medium close to one, low otherwise.
func (c Config) crowdLevelAt(place types.PlaceKnowledge, startMin int) types.CrowdLevel {
	level := types.CrowdLow
	for _, w := range place.CrowdPeakHours {
		start, end, ok := parseWindow(w)
		if !ok {
			continue
		}
		if startMin >= start && startMin <= end {
			return types.CrowdHigh
		}
		if startMin >= start-c.CrowdNearWindowMinutes && startMin <= end+c.CrowdNearWindowMinutes {
			level = types.CrowdMedium
		}
	}
	return level
}
