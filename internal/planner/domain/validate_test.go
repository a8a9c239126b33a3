package domain

import (
	"errors"
	"testing"
)

func TestValidatePlan(t *testing.T) {
	valid := func() Plan {
		return Plan{
			Title:   "Day plan",
			Summary: "A plan",
			Categories: []Category{{
				Name: "Personal",
				Tasks: []Task{{
					ID:          "task-1",
					Description: "Buy milk",
					Priority:    PriorityLow,
					Status:      StatusToDo,
				}},
			}},
		}
	}

	t.Run("accepts a valid plan", func(t *testing.T) {
		p := valid()
		if err := ValidatePlan(&p); err != nil {
			t.Fatalf("ValidatePlan: %v", err)
		}
	})

	t.Run("rejects empty task description", func(t *testing.T) {
		p := valid()
		p.Categories[0].Tasks[0].Description = ""
		assertValidationError(t, ValidatePlan(&p))
	})

	t.Run("rejects duplicate category names", func(t *testing.T) {
		p := valid()
		p.Categories = append(p.Categories, Category{Name: "Personal"})
		assertValidationError(t, ValidatePlan(&p))
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		p := valid()
		p.Categories[0].Tasks[0].Priority = "Urgent"
		assertValidationError(t, ValidatePlan(&p))
	})

	t.Run("case-differing category names are distinct buckets", func(t *testing.T) {
		p := valid()
		p.Categories = append(p.Categories, Category{Name: "personal"})
		if err := ValidatePlan(&p); err != nil {
			t.Fatalf("ValidatePlan: %v", err)
		}
	})
}

func TestValidateItinerary(t *testing.T) {
	valid := func() Itinerary {
		return Itinerary{
			Title:     "Weekend in Lisbon",
			StartDate: "2026-06-01",
			EndDate:   "2026-06-03",
			Days: []ItineraryDay{
				{Day: 1, Title: "Arrival", Activities: []ItineraryActivity{
					{ID: "activity-1", Time: "9:00 AM", Description: "Flight to Lisbon", Type: ActivityTravel},
				}},
				{Day: 2, Title: "Old town", Activities: []ItineraryActivity{
					{ID: "activity-2", Time: "12:00 PM", Description: "Lunch in Alfama", Type: ActivityFood},
				}},
			},
		}
	}

	t.Run("accepts a valid itinerary", func(t *testing.T) {
		it := valid()
		if err := ValidateItinerary(&it); err != nil {
			t.Fatalf("ValidateItinerary: %v", err)
		}
	})

	t.Run("rejects non-contiguous day numbers", func(t *testing.T) {
		it := valid()
		it.Days[1].Day = 3
		assertValidationError(t, ValidateItinerary(&it))
	})

	t.Run("rejects unknown activity type", func(t *testing.T) {
		it := valid()
		it.Days[0].Activities[0].Type = "shopping"
		assertValidationError(t, ValidateItinerary(&it))
	})
}

func TestItineraryIsEmpty(t *testing.T) {
	empty := &Itinerary{}
	if !empty.IsEmpty() {
		t.Error("zero itinerary should be empty")
	}

	var nilIt *Itinerary
	if !nilIt.IsEmpty() {
		t.Error("nil itinerary should be empty")
	}

	full := &Itinerary{Title: "Trip"}
	if full.IsEmpty() {
		t.Error("titled itinerary should not be empty")
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}
