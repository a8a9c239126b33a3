package domain

import "sort"

// ActivityType classifies an itinerary activity.
type ActivityType string

const (
	ActivityTravel  ActivityType = "travel"
	ActivityFood    ActivityType = "food"
	ActivityGeneric ActivityType = "activity"
	ActivityLodging ActivityType = "lodging"
)

// ItineraryActivity is a single entry in a day's schedule.
type ItineraryActivity struct {
	ID          string       `json:"id"`
	Time        string       `json:"time"`
	Description string       `json:"description"`
	Emoji       string       `json:"emoji,omitempty"`
	Type        ActivityType `json:"type"`
}

// ItineraryDay holds one day of the trip. Day numbers are 1-based and
// contiguous.
type ItineraryDay struct {
	Day        int                 `json:"day"`
	Title      string              `json:"title"`
	Activities []ItineraryActivity `json:"activities"`
}

// Itinerary is a titled, dated, multi-day travel schedule. Updates replace
// the whole document; there is no field-level merge.
type Itinerary struct {
	Title     string         `json:"title"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Days      []ItineraryDay `json:"days"`
}

// IsEmpty reports whether the itinerary is the sentinel empty result the
// model returns when the input lacks a destination or dates. Distinct from
// an error: the caller must check for it explicitly.
func (it *Itinerary) IsEmpty() bool {
	return it == nil || (it.Title == "" && it.StartDate == "" && it.EndDate == "" && len(it.Days) == 0)
}

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Days = make([]ItineraryDay, len(it.Days))
	for i, d := range it.Days {
		dd := d
		dd.Activities = append([]ItineraryActivity(nil), d.Activities...)
		out.Days[i] = dd
	}
	return out
}

// SortDays orders days by day number in place.
func (it *Itinerary) SortDays() {
	sort.SliceStable(it.Days, func(i, j int) bool {
		return it.Days[i].Day < it.Days[j].Day
	})
}
