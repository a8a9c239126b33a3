package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voxplan-backend/internal/planner/domain"
)

// pipelineFake scripts every model call the facade makes, dispatching on
// which prompt is asking: intent routing, structural generation, or
// per-task enrichment.
type pipelineFake struct {
	transcription string
	intent        string
	planJSON      string
	itineraryJSON string
	detailsJSON   string
}

func (p *pipelineFake) service() *fakeAI {
	return &fakeAI{
		transcribe: func(mimeType, data string) (string, error) {
			return p.transcription, nil
		},
		generateJSON: func(prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, `"intent"`):
				return `{"intent": "` + p.intent + `"}`, nil
			case strings.Contains(prompt, "task analysis expert"):
				return p.detailsJSON, nil
			case strings.Contains(prompt, "travel agent"):
				return p.itineraryJSON, nil
			default:
				return p.planJSON, nil
			}
		},
	}
}

func TestGenerateFromVoicePlan(t *testing.T) {
	fake := &pipelineFake{
		transcription: "I need to go to the gym and then do some work",
		intent:        "createPlan",
		planJSON: `{
			"title": "Busy Day",
			"summary": "Gym and work.",
			"categories": [
				{"category": "Personal", "tasks": [
					{"task": "Go to the gym"},
					{"task": "Do some work"}
				]}
			]
		}`,
		detailsJSON: `{"task": "x", "category": "Personal", "deadline": "7:00 AM", "priority": "High", "emoji": "💪"}`,
	}

	planRepo := newMemPlanRepo()
	uc := NewPlannerUsecase(fake.service(), planRepo, newMemItineraryRepo())

	res := uc.GenerateFromVoice(context.Background(), "user-1", audioURI, HintNone)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Type != IntentPlan || res.Plan == nil {
		t.Fatalf("expected a plan result, got %+v", res)
	}
	if res.Transcription != fake.transcription {
		t.Errorf("transcription = %q", res.Transcription)
	}

	for _, c := range res.Plan.Categories {
		for _, task := range c.Tasks {
			if task.ID == "" {
				t.Errorf("task %q has no id", task.Description)
			}
			if task.Status != domain.StatusToDo {
				t.Errorf("task %q status = %q, want To Do", task.Description, task.Status)
			}
			if task.Deadline == "" {
				t.Errorf("task %q not enriched with a deadline", task.Description)
			}
		}
	}

	if res.Plan.ID == "" || res.Plan.UserID != "user-1" {
		t.Errorf("plan not stamped: id=%q user=%q", res.Plan.ID, res.Plan.UserID)
	}
	if got, _ := planRepo.FindByID(res.Plan.ID); got == nil {
		t.Error("generated plan was not persisted")
	}
}

func TestGenerateFromVoiceTranscriptionFailure(t *testing.T) {
	uc := NewPlannerUsecase(&fakeAI{
		transcribe: func(string, string) (string, error) { return "", errors.New("upstream 500") },
	}, newMemPlanRepo(), newMemItineraryRepo())

	res := uc.GenerateFromVoice(context.Background(), "user-1", audioURI, HintNone)
	if res.Error != msgTranscriptionFailed {
		t.Errorf("error = %q, want transcription failure message", res.Error)
	}
	if res.Plan != nil || res.Itinerary != nil || res.Transcription != "" {
		t.Errorf("failure result carries payload: %+v", res)
	}
}

func TestGenerateFromVoiceUnsupported(t *testing.T) {
	fake := &pipelineFake{
		transcription: "what's the weather like today",
		intent:        "unsupported",
	}
	uc := NewPlannerUsecase(fake.service(), newMemPlanRepo(), newMemItineraryRepo())

	res := uc.GenerateFromVoice(context.Background(), "user-1", audioURI, HintNone)
	if res.Type != IntentUnsupported || res.Error != msgUnsupportedRequest {
		t.Errorf("got %+v", res)
	}
	if res.Transcription != fake.transcription {
		t.Error("unsupported result must still return the transcription")
	}
}

func TestGenerateFromVoiceVagueItinerary(t *testing.T) {
	fake := &pipelineFake{
		transcription: "I want to travel somewhere nice",
		intent:        "createItinerary",
		itineraryJSON: "{}",
	}
	itineraryRepo := newMemItineraryRepo()
	uc := NewPlannerUsecase(fake.service(), newMemPlanRepo(), itineraryRepo)

	res := uc.GenerateFromVoice(context.Background(), "user-1", audioURI, HintNone)
	if res.Type != IntentUnsupported || res.Error != msgUnsupportedRequest {
		t.Errorf("empty-object itinerary should report unsupported, got %+v", res)
	}
	if len(itineraryRepo.itineraries) != 0 {
		t.Error("vague itinerary must not be persisted")
	}
}

func TestUpdatePlanFromVoice(t *testing.T) {
	planRepo := newMemPlanRepo()
	if err := planRepo.Upsert(storedPlanFixture("plan-1", "user-1")); err != nil {
		t.Fatal(err)
	}

	fake := &pipelineFake{
		transcription: "also book a rental car",
		planJSON: `{
			"title": "Errands",
			"summary": "Things to do",
			"categories": [
				{"category": "Personal", "tasks": [
					{"id": "task-1", "task": "Pack for the beach", "status": "To Do",
					 "subtasks": [{"id": "s1", "text": "find swimsuit", "completed": true}]},
					{"id": "tmp-1", "task": "Book a rental car"}
				]}
			]
		}`,
		detailsJSON: `{"task": "Book a rental car", "category": "Personal", "deadline": "Friday", "priority": "Medium", "emoji": "🚗"}`,
	}

	uc := NewPlannerUsecase(fake.service(), planRepo, newMemItineraryRepo())

	t.Run("merges and persists", func(t *testing.T) {
		res := uc.UpdatePlanFromVoice(context.Background(), "user-1", "plan-1", audioURI)
		if res.Error != "" {
			t.Fatalf("unexpected error: %s", res.Error)
		}

		_, kept := res.Plan.Plan.FindTask("task-1")
		if kept == nil {
			t.Fatal("surviving task lost its id")
		}
		if len(kept.Subtasks) != 1 || !kept.Subtasks[0].Completed {
			t.Errorf("surviving subtask state changed: %+v", kept.Subtasks)
		}

		_, added := res.Plan.Plan.FindTask("tmp-1")
		if added == nil {
			t.Fatal("new task missing")
		}
		if added.Deadline != "Friday" || added.Emoji != "🚗" {
			t.Errorf("new task not enriched: %+v", added)
		}

		persisted, _ := planRepo.FindByID("plan-1")
		if persisted == nil || persisted.Transcription != fake.transcription {
			t.Errorf("update not persisted with new transcription: %+v", persisted)
		}
	})

	t.Run("rejects other users", func(t *testing.T) {
		res := uc.UpdatePlanFromVoice(context.Background(), "user-2", "plan-1", audioURI)
		if res.Error == "" || res.Plan != nil {
			t.Errorf("foreign plan update must fail, got %+v", res)
		}
	})
}

func TestUpdateItineraryFromVoiceTooVague(t *testing.T) {
	itineraryRepo := newMemItineraryRepo()
	stored := &domain.StoredItinerary{
		Itinerary: domain.Itinerary{
			Title:     "Weekend in Lisbon",
			StartDate: "2026-09-05",
			EndDate:   "2026-09-06",
			Days:      []domain.ItineraryDay{{Day: 1, Title: "Arrival"}},
		},
		ID:     "it-1",
		UserID: "user-1",
	}
	if err := itineraryRepo.Upsert(stored); err != nil {
		t.Fatal(err)
	}

	fake := &pipelineFake{
		transcription: "change it somehow",
		itineraryJSON: "{}",
	}
	uc := NewPlannerUsecase(fake.service(), newMemPlanRepo(), itineraryRepo)

	res := uc.UpdateItineraryFromVoice(context.Background(), "user-1", "it-1", audioURI)
	if res.Error != msgItineraryTooVague {
		t.Errorf("error = %q, want too-vague message", res.Error)
	}
	if got, _ := itineraryRepo.FindByID("it-1"); got.Title != "Weekend in Lisbon" {
		t.Error("vague update must leave the stored itinerary untouched")
	}
}

func TestAddSubtasksFromVoice(t *testing.T) {
	planRepo := newMemPlanRepo()
	if err := planRepo.Upsert(storedPlanFixture("plan-1", "user-1")); err != nil {
		t.Fatal(err)
	}

	uc := NewPlannerUsecase(&fakeAI{
		transcribe: func(string, string) (string, error) { return "add buying sunscreen", nil },
		generateJSON: func(prompt string) (string, error) {
			return `{"id": "task-1", "task": "Pack for the beach", "status": "To Do",
				"subtasks": [
					{"id": "s1", "text": "find swimsuit", "completed": true},
					{"id": "tmp-1", "text": "buy sunscreen", "completed": false}
				]}`, nil
		},
	}, planRepo, newMemItineraryRepo())

	res := uc.AddSubtasksFromVoice(context.Background(), "user-1", "plan-1", "task-1", audioURI)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.Task.Subtasks) != 2 {
		t.Fatalf("got %d subtasks, want 2: %+v", len(res.Task.Subtasks), res.Task.Subtasks)
	}
	if res.Task.Subtasks[1].Text != "buy sunscreen" || res.Task.Subtasks[1].Completed {
		t.Errorf("new subtask wrong: %+v", res.Task.Subtasks[1])
	}

	persisted, _ := planRepo.FindByID("plan-1")
	_, task := persisted.Plan.FindTask("task-1")
	if len(task.Subtasks) != 2 {
		t.Errorf("augmented task not persisted: %+v", task.Subtasks)
	}

	t.Run("missing task", func(t *testing.T) {
		res := uc.AddSubtasksFromVoice(context.Background(), "user-1", "plan-1", "nope", audioURI)
		if res.Error == "" {
			t.Error("expected an error for an unknown task id")
		}
	})
}

func TestSetTaskStatus(t *testing.T) {
	planRepo := newMemPlanRepo()
	if err := planRepo.Upsert(storedPlanFixture("plan-1", "user-1")); err != nil {
		t.Fatal(err)
	}
	uc := NewPlannerUsecase(&fakeAI{}, planRepo, newMemItineraryRepo())

	stored, err := uc.SetTaskStatus("user-1", "plan-1", "task-1", domain.StatusDone)
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	_, task := stored.Plan.FindTask("task-1")
	if task.Status != domain.StatusDone {
		t.Errorf("status = %q, want Done", task.Status)
	}

	persisted, _ := planRepo.FindByID("plan-1")
	_, task = persisted.Plan.FindTask("task-1")
	if task.Status != domain.StatusDone {
		t.Error("status change not persisted")
	}

	if _, err := uc.SetTaskStatus("user-1", "plan-1", "task-1", "Paused"); err == nil {
		t.Error("invalid status accepted")
	}
	if _, err := uc.SetTaskStatus("user-2", "plan-1", "task-1", domain.StatusDone); !IsNotFound(err) {
		t.Errorf("foreign plan: err = %v, want not-found", err)
	}
}

func TestInsights(t *testing.T) {
	planRepo := newMemPlanRepo()
	if err := planRepo.Upsert(storedPlanFixture("plan-1", "user-1")); err != nil {
		t.Fatal(err)
	}

	uc := NewPlannerUsecase(&fakeAI{
		generateJSON: func(prompt string) (string, error) {
			if !strings.Contains(prompt, "Pack for the beach") {
				t.Error("insights prompt does not carry the user's plan history")
			}
			return `{"insights": [
				{"emoji": "🎉", "text": "You completed your first subtask!"},
				{"emoji": "🌊", "text": "A beach trip is coming up."},
				{"emoji": "💡", "text": "Try setting deadlines on open tasks."}
			], "productivityPeak": "Monday"}`, nil
		},
	}, planRepo, newMemItineraryRepo())

	res := uc.Insights(context.Background(), "user-1")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.Insights.Insights) != 3 {
		t.Errorf("got %d insights, want 3", len(res.Insights.Insights))
	}
	if res.Insights.ProductivityPeak != "Monday" {
		t.Errorf("productivityPeak = %q", res.Insights.ProductivityPeak)
	}
}
