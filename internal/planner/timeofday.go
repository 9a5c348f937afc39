package planner

import (
	"strings"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

// timeOfDay is the internal preference ordering used to seed routes:
// morning < afternoon < evening < night < flexible.
type timeOfDay int

const (
	prefMorning timeOfDay = iota
	prefAfternoon
	prefEvening
	prefNight
	prefFlexible
)

// preferenceFor maps a free-text best-time hint onto a time-of-day bucket.
// Unknown or empty hints are flexible.
func preferenceFor(hint string) timeOfDay {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "morning"), strings.Contains(h, "sunrise"):
		return prefMorning
	case strings.Contains(h, "afternoon"), strings.Contains(h, "noon"):
		return prefAfternoon
	case strings.Contains(h, "evening"), strings.Contains(h, "sunset"):
		return prefEvening
	case strings.Contains(h, "night"):
		return prefNight
	default:
		return prefFlexible
	}
}

// preferredWindowStart returns the earliest clock minute of the preferred
// window, or ok=false for flexible places.
func preferredWindowStart(p timeOfDay) (int, bool) {
	switch p {
	case prefMorning:
		return 8 * 60, true
	case prefAfternoon:
		return 12 * 60, true
	case prefEvening:
		return 17 * 60, true
	case prefNight:
		return 21 * 60, true
	default:
		return 0, false
	}
}

// slotFor buckets a start time into the coarse schedule slot.
func slotFor(minutes int) types.TimeSlot {
	switch {
	case minutes < 12*60:
		return types.SlotMorning
	case minutes < 17*60:
		return types.SlotAfternoon
	case minutes < 21*60:
		return types.SlotEvening
	default:
		return types.SlotNight
	}
}
