package domain

import "fmt"

// ValidatePlan checks a generated plan against the schema contract.
// Run after RepairPlan so missing ids and statuses are already healed.
func ValidatePlan(p *Plan) error {
	var issues []string

	seenCategories := make(map[string]bool)
	for ci, c := range p.Categories {
		if c.Name == "" {
			issues = append(issues, fmt.Sprintf("category %d has no name", ci))
		}
		if seenCategories[c.Name] {
			issues = append(issues, fmt.Sprintf("duplicate category %q", c.Name))
		}
		seenCategories[c.Name] = true

		for _, t := range c.Tasks {
			if t.Description == "" {
				issues = append(issues, fmt.Sprintf("task %q in %q has no description", t.ID, c.Name))
			}
			if !validPriority(t.Priority) {
				issues = append(issues, fmt.Sprintf("task %q has invalid priority %q", t.ID, t.Priority))
			}
			if !validStatus(t.Status) {
				issues = append(issues, fmt.Sprintf("task %q has invalid status %q", t.ID, t.Status))
			}
			seenSubtasks := make(map[string]bool)
			for _, s := range t.Subtasks {
				if s.Text == "" {
					issues = append(issues, fmt.Sprintf("subtask %q of task %q has no text", s.ID, t.ID))
				}
				if s.ID != "" && seenSubtasks[s.ID] {
					issues = append(issues, fmt.Sprintf("duplicate subtask id %q in task %q", s.ID, t.ID))
				}
				seenSubtasks[s.ID] = true
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateItinerary checks structure after RepairItinerary has sorted days.
// Day numbers must run 1..n with no gaps.
func ValidateItinerary(it *Itinerary) error {
	var issues []string

	if it.Title == "" {
		issues = append(issues, "itinerary has no title")
	}
	for i, d := range it.Days {
		if d.Day != i+1 {
			issues = append(issues, fmt.Sprintf("day numbers must be contiguous from 1, got %d at position %d", d.Day, i))
		}
		for _, a := range d.Activities {
			if a.Description == "" {
				issues = append(issues, fmt.Sprintf("activity %q on day %d has no description", a.ID, d.Day))
			}
			switch a.Type {
			case ActivityTravel, ActivityFood, ActivityGeneric, ActivityLodging:
			default:
				issues = append(issues, fmt.Sprintf("activity %q has invalid type %q", a.ID, a.Type))
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validPriority(p Priority) bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func validStatus(s TaskStatus) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}
