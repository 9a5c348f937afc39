package types

import (
	"time"

	"github.com/google/uuid"
)

// GenerateItineraryRequest is the expected JSON body for itinerary generation.
type GenerateItineraryRequest struct {
	Title  string           `json:"title,omitempty"`
	Places []PlaceKnowledge `json:"places"`
	Dates  DateRange        `json:"dates"`
	Budget *Budget          `json:"budget,omitempty"`
}

// SaveItineraryRequest persists a previously generated itinerary.
type SaveItineraryRequest struct {
	Title     string             `json:"title" validate:"required,min=3,max=100"`
	Dates     DateRange          `json:"dates"`
	Itinerary GeneratedItinerary `json:"itinerary"`
}

// SavedItinerary is a stored itinerary row.
type SavedItinerary struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Dates     DateRange          `json:"dates"`
	Itinerary GeneratedItinerary `json:"itinerary"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// PaginatedItinerariesResponse wraps a page of saved itineraries.
type PaginatedItinerariesResponse struct {
	Itineraries  []SavedItinerary `json:"itineraries"`
	TotalRecords int              `json:"total_records"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
}
