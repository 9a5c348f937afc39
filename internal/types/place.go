package types

// PlaceType tags a knowledge record with its scheduling category.
type PlaceType string

const (
	PlaceTypeBeach         PlaceType = "beach"
	PlaceTypeFort          PlaceType = "fort"
	PlaceTypeLandmark      PlaceType = "landmark"
	PlaceTypeRestaurant    PlaceType = "restaurant"
	PlaceTypeNightlife     PlaceType = "nightlife"
	PlaceTypeActivity      PlaceType = "activity"
	PlaceTypeAccommodation PlaceType = "accommodation"
	PlaceTypeDestination   PlaceType = "destination"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the pair carries no usable position. Records
// missing coordinates are treated as distance-zero by the engine rather
// than rejected.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// OpeningHours is a daily open/close window in "HH:MM" local time.
type OpeningHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// RestaurantOption is a dining candidate attached to a place's knowledge
// record, used by the meal planner.
type RestaurantOption struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // e.g. "restaurant", "cafe", "bakery"
	Rating      float64     `json:"rating"`
	DistanceKm  float64     `json:"distance_km"`
	Coordinates Coordinates `json:"coordinates"`
}

// PlaceKnowledge is a researched place's static attributes used as
// scheduling input. Produced upstream by the place-research collaborator;
// the engine never mutates it. Name is the unique key within a trip.
type PlaceKnowledge struct {
	Name              string             `json:"name"`
	Type              PlaceType          `json:"type"`
	Coordinates       Coordinates        `json:"coordinates"`
	TypicalDuration   int                `json:"typical_duration"` // minutes
	OpeningHours      *OpeningHours      `json:"opening_hours,omitempty"`
	EntryFee          *float64           `json:"entry_fee,omitempty"`
	BestTimeToVisit   string             `json:"best_time_to_visit,omitempty"` // free-text hint
	CrowdPeakHours    []string           `json:"crowd_peak_hours,omitempty"`   // "HH:MM-HH:MM" windows
	NearbyRestaurants []RestaurantOption `json:"nearby_restaurants,omitempty"`
}

// PlaceSummary is the denormalized place reference embedded in scheduled
// activities so the output document is self-contained.
type PlaceSummary struct {
	Name        string      `json:"name"`
	Type        PlaceType   `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// Summary returns the denormalized reference for a knowledge record.
func (p PlaceKnowledge) Summary() PlaceSummary {
	return PlaceSummary{Name: p.Name, Type: p.Type, Coordinates: p.Coordinates}
}
