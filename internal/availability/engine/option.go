package engine

import (
	"slotbook/pkg/locale"
	"slotbook/pkg/timefmt"
)

// NowValue is the sentinel start-option value for "book from right now".
const NowValue = "Now"

// StartOption is a presentation-ready selectable start time. Options carry
// no persistent identity; they are rebuilt in full whenever an input
// changes.
type StartOption struct {
	Label      string   `json:"label"`
	Value      string   `json:"value"`
	Slot       TimeSlot `json:"slot"`
	IsNow      bool     `json:"is_now"`
	FullString string   `json:"full_string,omitempty"`
	Disabled   bool     `json:"disabled,omitempty"`
}

// EndOption is a presentation-ready selectable end time. NextDay marks
// candidates that terminate on the day after the target date.
type EndOption struct {
	Label    string   `json:"label"`
	Value    string   `json:"value"`
	Slot     TimeSlot `json:"slot"`
	NextDay  bool     `json:"next_day,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

// Options bundles the per-instantiation knobs shared by both resolvers.
type Options struct {
	Formats        timefmt.Formats
	Labels         locale.Labels
	GranularityMin int

	// Start resolver
	AllowNow bool

	// End resolver
	MinUsageHours float64
	MaxUsageHours float64
	CrossDay      bool
}
