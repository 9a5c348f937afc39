// Package planner implements the itinerary generation engine: geographic
// clustering, day bin-packing, route ordering, slot scheduling, meal
// insertion and trip summarization. The engine is purely computational
// and deterministic: identical inputs (including slice order and the
// injected clock) always produce identical output.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// Input is everything a generation run depends on. Now is the injected
// clock stamped onto the output; leaving it zero falls back to wall time,
// which callers needing reproducible output should avoid.
type Input struct {
	Places []types.PlaceKnowledge
	Dates  types.DateRange
	Budget *types.Budget
	Now    time.Time
}

// Generator runs the itinerary engine with a fixed tuning profile. It
// holds no state between calls.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

func NewGenerator(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Generate produces the complete day-by-day itinerary in one synchronous
// call. It degrades rather than fails: empty input yields valid empty
// days, unparseable dates collapse to a single day, and a nil budget
// disables budget-scaled cost estimation.
func (g *Generator) Generate(ctx context.Context, in Input) (*types.GeneratedItinerary, error) {
	numDays, err := in.Dates.NumDays()
	if err != nil {
		g.logger.WarnContext(ctx, "Unparseable trip dates, falling back to a single day",
			slog.String("start", in.Dates.Start), slog.String("end", in.Dates.End), slog.Any("error", err))
		numDays = 1
	}

	// Accommodation entries are never scheduled; keep them out of
	// clustering and packing entirely.
	schedulable := make([]types.PlaceKnowledge, 0, len(in.Places))
	for _, p := range in.Places {
		if p.Type != types.PlaceTypeAccommodation {
			schedulable = append(schedulable, p)
		}
	}

	bins := newBinPacker(g.cfg, schedulable).pack(numDays)

	costScale := g.costScale(in.Budget, numDays)

	// Each day only depends on its own bin, so days build in parallel and
	// assemble by index; the output is identical to a sequential build.
	days := make([]types.DayItinerary, numDays)
	eg, egCtx := errgroup.WithContext(ctx)
	for d := 0; d < numDays; d++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			days[d] = g.buildDay(d+1, in.Dates, bins[d], costScale)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("itinerary generation cancelled: %w", err)
	}

	generatedAt := in.Now
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	out := &types.GeneratedItinerary{
		Days:        days,
		Route:       visitRoute(days),
		Summary:     g.cfg.summarize(days, in.Places),
		GeneratedAt: generatedAt,
	}

	g.logger.DebugContext(ctx, "Itinerary generated",
		slog.Int("days", numDays),
		slog.Int("places_in", len(in.Places)),
		slog.Int("visits_out", out.Summary.TotalActivities))
	return out, nil
}

// buildDay runs the schedule builder and meal planner for one day and
// accumulates the day's totals.
func (g *Generator) buildDay(day int, dates types.DateRange, bin []types.PlaceKnowledge, costScale float64) types.DayItinerary {
	sched := g.cfg.buildDaySchedule(day, bin, costScale)
	activities := g.cfg.planMeals(day, sched.Activities, bin, costScale)

	out := types.DayItinerary{
		Day:        day,
		Date:       dates.DateForDay(day),
		Activities: activities,
	}
	for _, a := range activities {
		out.TotalFatigue += a.FatigueImpact
		if a.EstimatedCost != nil {
			out.TotalCost += *a.EstimatedCost
		}
		if a.TravelFromPrev != nil {
			out.TravelDistanceKm += a.TravelFromPrev.DistanceKm
		}
	}
	out.Recommendations = g.dayRecommendations(activities, sched.Dropped)
	return out
}

// dayRecommendations suggests additions for recommended categories the
// day does not cover, and notes places that could not be scheduled.
func (g *Generator) dayRecommendations(activities []types.ScheduledActivity, dropped []string) []string {
	covered := make(map[types.PlaceType]bool)
	hasVisit := false
	for _, a := range activities {
		if a.Type == types.ActivityVisit {
			covered[a.Place.Type] = true
			hasVisit = true
		}
		if a.Type == types.ActivityMeal {
			covered[types.PlaceTypeRestaurant] = true
		}
	}

	var recs []string
	if hasVisit {
		for _, cat := range g.cfg.RecommendedCategories {
			if !covered[cat] {
				recs = append(recs, fmt.Sprintf("Consider adding a %s stop to this day", cat))
			}
		}
	}
	for _, name := range dropped {
		recs = append(recs, fmt.Sprintf("%s could not be scheduled within this day's hours", name))
	}
	return recs
}

// costScale anchors per-type cost defaults against the trip's per-day
// budget share. A nil budget keeps the static defaults.
func (g *Generator) costScale(budget *types.Budget, numDays int) float64 {
	if budget == nil || budget.Total <= 0 || numDays < 1 || g.cfg.ReferenceDailySpend <= 0 {
		return 1
	}
	scale := budget.Total / float64(numDays) / g.cfg.ReferenceDailySpend
	if scale < 0.5 {
		return 0.5
	}
	if scale > 2 {
		return 2
	}
	return scale
}

// visitRoute collects the ordered coordinates of every visit across the
// trip, used downstream for map polylines.
func visitRoute(days []types.DayItinerary) []types.Coordinates {
	route := make([]types.Coordinates, 0)
	for _, d := range days {
		for _, a := range d.Activities {
			if a.Type == types.ActivityVisit {
				route = append(route, a.Place.Coordinates)
			}
		}
	}
	return route
}
