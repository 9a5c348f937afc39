package planner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tp is a shorthand place constructor for tests.
func tp(name string, placeType types.PlaceType, lat, lng float64, duration int) types.PlaceKnowledge {
	return types.PlaceKnowledge{
		Name:            name,
		Type:            placeType,
		Coordinates:     types.Coordinates{Lat: lat, Lng: lng},
		TypicalDuration: duration,
	}
}

// goaPlaces is a compact coastal cluster used across tests.
func goaPlaces() []types.PlaceKnowledge {
	return []types.PlaceKnowledge{
		tp("Baga Beach", types.PlaceTypeBeach, 15.5553, 73.7517, 120),
		tp("Calangute Beach", types.PlaceTypeBeach, 15.5439, 73.7553, 90),
		tp("Aguada Fort", types.PlaceTypeFort, 15.4926, 73.7737, 90),
		tp("Basilica of Bom Jesus", types.PlaceTypeLandmark, 15.5009, 73.9116, 60),
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testLogger())
	in := Input{
		Places: goaPlaces(),
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-21"},
		Budget: &types.Budget{Total: 8000, Currency: "INR"},
		Now:    time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC),
	}

	first, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), in)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "identical inputs must produce identical output")
}

func TestGenerateEmptyInput(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Dates: types.DateRange{Start: "2026-11-20", End: "2026-11-22"},
	})
	require.NoError(t, err)

	require.Len(t, out.Days, 3)
	for _, d := range out.Days {
		assert.Empty(t, d.Activities)
		assert.Zero(t, d.TotalCost)
		assert.Zero(t, d.TotalFatigue)
	}
	assert.Empty(t, out.Route)
	assert.Zero(t, out.Summary.TotalActivities)
	assert.ElementsMatch(t, []string{"beach", "restaurant", "landmark"}, out.Summary.MissingCategories)
}

func TestGenerateUnparseableDatesFallBackToSingleDay(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Places: goaPlaces(),
		Dates:  types.DateRange{Start: "not-a-date", End: "2026-11-22"},
	})
	require.NoError(t, err)
	assert.Len(t, out.Days, 1)
}

func TestGenerateReversedRangeCountsAsOneDay(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Places: goaPlaces(),
		Dates:  types.DateRange{Start: "2026-11-22", End: "2026-11-20"},
	})
	require.NoError(t, err)
	assert.Len(t, out.Days, 1)
}

func TestGeneratePreservesPlaceSet(t *testing.T) {
	places := append(goaPlaces(),
		tp("Taj Holiday Village", types.PlaceTypeAccommodation, 15.4989, 73.7684, 0))
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Places: places,
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-21"},
	})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, d := range out.Days {
		for _, a := range d.Activities {
			if a.Type == types.ActivityVisit {
				seen[a.Place.Name]++
			}
		}
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "place %s scheduled more than once", name)
	}
	assert.NotContains(t, seen, "Taj Holiday Village", "accommodation must never be scheduled")
	for name := range seen {
		found := false
		for _, p := range places {
			if p.Name == name {
				found = true
			}
		}
		assert.True(t, found, "scheduled place %s was not in the input", name)
	}
}

func TestGenerateActivitiesNeverOverlap(t *testing.T) {
	places := goaPlaces()
	places[0].NearbyRestaurants = []types.RestaurantOption{
		{Name: "Britto's", Type: "restaurant", Rating: 4.3, DistanceKm: 0.2},
		{Name: "Cafe Lilliput", Type: "cafe", Rating: 4.0, DistanceKm: 0.4},
	}
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Places: places,
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-21"},
	})
	require.NoError(t, err)

	for _, d := range out.Days {
		prevEnd := -1
		for _, a := range d.Activities {
			start, ok := parseClock(a.StartTime)
			require.True(t, ok, "bad start time %q", a.StartTime)
			end, ok := parseClock(a.EndTime)
			require.True(t, ok, "bad end time %q", a.EndTime)
			assert.GreaterOrEqual(t, start, prevEnd,
				"day %d: activity %s starts before the previous one ends", d.Day, a.ID)
			assert.GreaterOrEqual(t, end, start)
			prevEnd = end
		}
	}
}

func TestGenerateStampsInjectedClock(t *testing.T) {
	now := time.Date(2026, 11, 1, 9, 30, 0, 0, time.UTC)
	g := NewGenerator(DefaultConfig(), testLogger())
	out, err := g.Generate(context.Background(), Input{
		Places: goaPlaces(),
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-20"},
		Now:    now,
	})
	require.NoError(t, err)
	assert.Equal(t, now, out.GeneratedAt)
	assert.Equal(t, "2026-11-20", out.Days[0].Date)
}

func TestCostScale(t *testing.T) {
	g := NewGenerator(DefaultConfig(), testLogger())

	assert.Equal(t, 1.0, g.costScale(nil, 3), "nil budget keeps static defaults")
	assert.Equal(t, 1.0, g.costScale(&types.Budget{Total: 6000}, 3))
	assert.Equal(t, 2.0, g.costScale(&types.Budget{Total: 60000}, 3), "scale clamps high")
	assert.Equal(t, 0.5, g.costScale(&types.Budget{Total: 300}, 3), "scale clamps low")
}

func TestGenerateSingleDayStaysUnderCeiling(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(cfg, testLogger())

	durations := []int{60, 90, 120, 45, 200, 30}
	var places []types.PlaceKnowledge
	for i, d := range durations {
		places = append(places, tp(string(rune('A'+i)), types.PlaceTypeActivity, 15.50+float64(i)*0.01, 73.75, d))
	}
	out, err := g.Generate(context.Background(), Input{
		Places: places,
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-20"},
	})
	require.NoError(t, err)
	require.Len(t, out.Days, 1)

	visits := 0
	total := 0
	for _, a := range out.Days[0].Activities {
		switch a.Type {
		case types.ActivityVisit:
			visits++
			total += a.DurationMinutes
		case types.ActivityTravel:
			total += a.DurationMinutes
		}
	}
	assert.Equal(t, len(places), visits, "a compact set fits a single day without drops")
	assert.LessOrEqual(t, total, cfg.DailyTimeBudgetMinutes+cfg.OverloadCeilingMinutes)
}

func TestDayRecommendationsFlagDroppedPlaces(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(cfg, testLogger())

	// Nine long visits into one day forces drops past the hard ceiling.
	var places []types.PlaceKnowledge
	for i := 0; i < 9; i++ {
		places = append(places, tp(string(rune('A'+i))+" Fort", types.PlaceTypeFort, 15.49+float64(i)*0.01, 73.77, 120))
	}
	out, err := g.Generate(context.Background(), Input{
		Places: places,
		Dates:  types.DateRange{Start: "2026-11-20", End: "2026-11-20"},
	})
	require.NoError(t, err)

	scheduled := 0
	for _, a := range out.Days[0].Activities {
		if a.Type == types.ActivityVisit {
			scheduled++
		}
	}
	assert.Less(t, scheduled, len(places), "an overloaded day must drop places")
	assert.NotEmpty(t, out.Days[0].Recommendations, "dropped places surface as day notes")
}
