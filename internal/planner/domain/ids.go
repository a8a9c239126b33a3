package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier with a readable prefix. The UUID suffix
// makes collisions negligible even across concurrent generation passes.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// RepairPlan is the defensive post-processing pass over generated plans:
// any task or subtask missing an identifier gets one, and tasks without a
// status default to "To Do". It returns a corrected copy and never fails;
// model omissions are silently self-healed, not reported. Running it on an
// already-complete plan is a no-op.
func RepairPlan(p Plan) Plan {
	out := p.Clone()
	for ci := range out.Categories {
		for ti := range out.Categories[ci].Tasks {
			t := &out.Categories[ci].Tasks[ti]
			if t.ID == "" {
				t.ID = NewID("task")
			}
			if t.Status == "" {
				t.Status = StatusToDo
			}
			for si := range t.Subtasks {
				if t.Subtasks[si].ID == "" {
					t.Subtasks[si].ID = NewID("subtask")
				}
			}
		}
	}
	return out
}

// RepairItinerary assigns identifiers to activities that lack one and orders
// days by day number. Returns a corrected copy; never fails.
func RepairItinerary(it Itinerary) Itinerary {
	out := it.Clone()
	out.SortDays()
	for di := range out.Days {
		for ai := range out.Days[di].Activities {
			if out.Days[di].Activities[ai].ID == "" {
				out.Days[di].Activities[ai].ID = NewID("activity")
			}
		}
	}
	return out
}
