package types

import (
	"fmt"
	"time"
)

// ActivityType distinguishes the kinds of entries in a day's schedule.
type ActivityType string

const (
	ActivityVisit  ActivityType = "visit"
	ActivityMeal   ActivityType = "meal"
	ActivityTravel ActivityType = "travel"
	ActivityRest   ActivityType = "rest"
)

// TimeSlot buckets a clock time into a coarse part of the day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// CrowdLevel is derived from a place's declared peak-hour windows.
type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "low"
	CrowdMedium CrowdLevel = "medium"
	CrowdHigh   CrowdLevel = "high"
)

// TravelLeg describes the transfer preceding an activity.
type TravelLeg struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Mode            string  `json:"mode"` // "auto" under the short-hop threshold, "car" otherwise
}

// ScheduledActivity is one timed entry of a day itinerary. Within a day,
// activities never overlap and are strictly ordered by StartTime.
type ScheduledActivity struct {
	ID              string       `json:"id"`
	Place           PlaceSummary `json:"place"`
	Day             int          `json:"day"` // 1-based
	TimeSlot        TimeSlot     `json:"time_slot"`
	StartTime       string       `json:"start_time"` // "HH:MM"
	EndTime         string       `json:"end_time"`   // "HH:MM"
	DurationMinutes int          `json:"duration_minutes"`
	Type            ActivityType `json:"type"`
	TravelFromPrev  *TravelLeg   `json:"travel_from_prev,omitempty"`
	FatigueImpact   int          `json:"fatigue_impact"` // meals may subtract
	CrowdLevel      CrowdLevel   `json:"crowd_level,omitempty"`
	BestTimeReason  string       `json:"best_time_reason,omitempty"`
	EstimatedCost   *float64     `json:"estimated_cost,omitempty"`
}

// DayItinerary is one day's complete schedule with accumulated totals.
type DayItinerary struct {
	Day              int                 `json:"day"`
	Date             string              `json:"date"` // ISO "2006-01-02"
	Activities       []ScheduledActivity `json:"activities"`
	TotalFatigue     int                 `json:"total_fatigue"`
	TotalCost        float64             `json:"total_cost"`
	TravelDistanceKm float64             `json:"travel_distance_km"`
	Recommendations  []string            `json:"recommendations,omitempty"`
}

// ItinerarySummary aggregates the whole trip.
type ItinerarySummary struct {
	TotalDays           int      `json:"total_days"`
	TotalCost           float64  `json:"total_cost"`
	TotalDistanceKm     float64  `json:"total_distance_km"`
	TotalActivities     int      `json:"total_activities"` // visit-type only
	AverageDailyFatigue float64  `json:"average_daily_fatigue"`
	MissingCategories   []string `json:"missing_categories,omitempty"`
}

// GeneratedItinerary is the engine's complete output: fully serializable
// and handed to rendering/export collaborators in one piece.
type GeneratedItinerary struct {
	Days        []DayItinerary   `json:"days"`
	Route       []Coordinates    `json:"route"` // ordered visit coordinates for map polylines
	Summary     ItinerarySummary `json:"summary"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// DateRange is the trip's inclusive ISO-8601 date pair.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const isoDate = "2006-01-02"

// NumDays returns the inclusive day count of the range, or an error when
// either bound fails to parse. A reversed range counts as a single day.
func (r DateRange) NumDays() (int, error) {
	start, err := time.Parse(isoDate, r.Start)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", r.Start, err)
	}
	end, err := time.Parse(isoDate, r.End)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", r.End, err)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// DateForDay returns the ISO date of the 1-based trip day. Falls back to
// the raw start string when the range does not parse.
func (r DateRange) DateForDay(day int) string {
	start, err := time.Parse(isoDate, r.Start)
	if err != nil {
		return r.Start
	}
	return start.AddDate(0, 0, day-1).Format(isoDate)
}

// Budget is the optional trip budget. A nil budget disables budget-scaled
// cost estimation but never fails generation.
type Budget struct {
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	PerPerson bool    `json:"per_person"`
}
