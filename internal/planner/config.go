package planner

import "github.com/FACorreiaa/go-itinerary-engine/internal/types"

// MealSlot is one of the fixed daily meal candidates.
type MealSlot struct {
	Name            string  // "breakfast", "lunch", ...
	Start           string  // "HH:MM"
	DurationMinutes int
	BaseCost        float64
	PreferCafe      bool // cafés preferred over restaurants for this slot
	FatigueImpact   int  // negative: meals recover fatigue
}

// Config carries every tuned constant of the engine. The values were tuned
// empirically, not derived, so they are kept together here instead of being
// scattered as literals. A caller may supply a different profile per locale
// (e.g. slower transit speeds).
type Config struct {
	// Clustering.
	RegionRadiusKm            float64 // single-link region threshold
	MicroClusterTravelMinutes int     // tighter threshold for day packing

	// Day packing.
	DailyTimeBudgetMinutes int // activity + travel capacity per day
	OverloadCeilingMinutes int // tolerated overshoot before rebalancing
	RebalanceMaxIterations int

	// Travel model.
	AverageSpeedKmh    float64 // matrix conversion for packing
	TravelMinutesPerKm float64 // scheduling legs
	MinTravelMinutes   int     // floor per leg
	TravelModeSwitchKm float64 // "auto" below, "car" above

	// Day clock.
	DayStart           string // "HH:MM", first activity may start here
	DayCutoff          string // "HH:MM", later starts dropped unless nightlife
	VisitBufferMinutes int    // slack after each visit

	// Crowd estimation.
	CrowdNearWindowMinutes int // "medium" this close to a peak window

	// Meals.
	MealSlots              []MealSlot
	MealSpanMarginMinutes  int // slot applies this far outside the activity span
	MaxMealShiftMinutes    int // furthest a slot may slide to avoid overlap

	// Fatigue and cost tables, keyed by place type, with fallback defaults.
	FatigueByType       map[types.PlaceType]int
	DefaultFatigue      int
	CostByType          map[types.PlaceType]float64
	DefaultCost         float64
	ReferenceDailySpend float64 // budget scale anchor for cost estimates

	// Trip-level category recommendations.
	RecommendedCategories []types.PlaceType
}

// DefaultConfig returns the tuned baseline profile.
func DefaultConfig() Config {
	return Config{
		RegionRadiusKm:            100,
		MicroClusterTravelMinutes: 30,

		DailyTimeBudgetMinutes: 600,
		OverloadCeilingMinutes: 120,
		RebalanceMaxIterations: 10,

		AverageSpeedKmh:    25, // auto-rickshaw-equivalent average
		TravelMinutesPerKm: 3,
		MinTravelMinutes:   15,
		TravelModeSwitchKm: 5,

		DayStart:           "08:00",
		DayCutoff:          "23:00",
		VisitBufferMinutes: 15,

		CrowdNearWindowMinutes: 60,

		MealSlots: []MealSlot{
			{Name: "breakfast", Start: "07:30", DurationMinutes: 45, BaseCost: 150, PreferCafe: true, FatigueImpact: -10},
			{Name: "morning snack", Start: "10:30", DurationMinutes: 20, BaseCost: 80, PreferCafe: true, FatigueImpact: -5},
			{Name: "lunch", Start: "12:30", DurationMinutes: 60, BaseCost: 350, PreferCafe: false, FatigueImpact: -15},
			{Name: "evening snack", Start: "16:30", DurationMinutes: 20, BaseCost: 80, PreferCafe: true, FatigueImpact: -5},
			{Name: "dinner", Start: "19:30", DurationMinutes: 75, BaseCost: 450, PreferCafe: false, FatigueImpact: -15},
		},
		MealSpanMarginMinutes: 60,
		MaxMealShiftMinutes:   90,

		FatigueByType: map[types.PlaceType]int{
			types.PlaceTypeBeach:       15,
			types.PlaceTypeFort:        25,
			types.PlaceTypeLandmark:    20,
			types.PlaceTypeRestaurant:  5,
			types.PlaceTypeNightlife:   10,
			types.PlaceTypeActivity:    30,
			types.PlaceTypeDestination: 20,
		},
		DefaultFatigue: 15,
		CostByType: map[types.PlaceType]float64{
			types.PlaceTypeBeach:       100,
			types.PlaceTypeFort:        200,
			types.PlaceTypeLandmark:    150,
			types.PlaceTypeRestaurant:  300,
			types.PlaceTypeNightlife:   400,
			types.PlaceTypeActivity:    500,
			types.PlaceTypeDestination: 150,
		},
		DefaultCost:         150,
		ReferenceDailySpend: 2000,

		RecommendedCategories: []types.PlaceType{
			types.PlaceTypeBeach,
			types.PlaceTypeRestaurant,
			types.PlaceTypeLandmark,
		},
	}
}

// fatigueFor looks up the visit fatigue for a place type.
func (c Config) fatigueFor(t types.PlaceType) int {
	if v, ok := c.FatigueByType[t]; ok {
		return v
	}
	return c.DefaultFatigue
}

// costFor looks up the base cost estimate for a place type.
func (c Config) costFor(t types.PlaceType) float64 {
	if v, ok := c.CostByType[t]; ok {
		return v
	}
	return c.DefaultCost
}
