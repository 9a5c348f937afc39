package planner

import "github.com/FACorreiaa/go-itinerary-engine/internal/types"

// summarize aggregates trip-level totals across all days and flags
// recommended place categories that are structurally missing from the
// input knowledge set.
func (c Config) summarize(days []types.DayItinerary, input []types.PlaceKnowledge) types.ItinerarySummary {
	summary := types.ItinerarySummary{TotalDays: len(days)}

	totalFatigue := 0
	for _, d := range days {
		summary.TotalCost += d.TotalCost
		summary.TotalDistanceKm += d.TravelDistanceKm
		totalFatigue += d.TotalFatigue
		for _, a := range d.Activities {
			if a.Type == types.ActivityVisit {
				summary.TotalActivities++
			}
		}
	}
	if len(days) > 0 {
		summary.AverageDailyFatigue = float64(totalFatigue) / float64(len(days))
	}

	present := make(map[types.PlaceType]bool, len(input))
	for _, p := range input {
		present[p.Type] = true
	}
	for _, cat := range c.RecommendedCategories {
		if !present[cat] {
			summary.MissingCategories = append(summary.MissingCategories, string(cat))
		}
	}
	return summary
}
