package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"voxplan-backend/internal/planner/domain"
)

// planFakeAI answers structural plan prompts with structuralJSON and
// enrichment prompts via details (keyed by the task description), or with
// extractErr when set.
type planFakeAI struct {
	structuralJSON string
	details        map[string]string
	extractErr     error

	mu          sync.Mutex
	extractions []string // descriptions the extractor was asked about
}

func (f *planFakeAI) recordExtraction(desc string) {
	f.mu.Lock()
	f.extractions = append(f.extractions, desc)
	f.mu.Unlock()
}

func (f *planFakeAI) service() *fakeAI {
	return &fakeAI{
		generateJSON: func(prompt string) (string, error) {
			if strings.Contains(prompt, "task analysis expert") {
				for desc, out := range f.details {
					if strings.Contains(prompt, fmt.Sprintf("%q", desc)) {
						f.recordExtraction(desc)
						if f.extractErr != nil {
							return "", f.extractErr
						}
						return out, nil
					}
				}
				f.recordExtraction("?")
				if f.extractErr != nil {
					return "", f.extractErr
				}
				return "", nil
			}
			return f.structuralJSON, nil
		},
	}
}

func TestPlanGeneratorCreate(t *testing.T) {
	fake := &planFakeAI{
		structuralJSON: `{
			"title": "Busy Day",
			"summary": "Gym, work and study.",
			"categories": [
				{"category": "Health", "tasks": [{"id": "", "task": "Go to the gym"}]},
				{"category": "Work", "tasks": [{"id": "", "task": "Do work"}]}
			]
		}`,
		details: map[string]string{
			"Go to the gym": `{"task": "Go to the gym", "category": "Health", "deadline": "7:00 AM", "priority": "High", "emoji": ":muscle:"}`,
			"Do work":       `{"task": "Do work", "category": "Work", "deadline": "9:00 AM", "priority": "Medium", "emoji": "💻"}`,
		},
	}

	gen := NewPlanGenerator(fake.service())
	plan, err := gen.Generate(context.Background(), PlanRequest{Text: "I need to go to the gym and do work, make a plan for me"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(plan.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(plan.Categories))
	}
	for _, c := range plan.Categories {
		for _, task := range c.Tasks {
			if task.ID == "" {
				t.Errorf("task %q has no id", task.Description)
			}
			if task.Status != domain.StatusToDo {
				t.Errorf("task %q status = %q, want To Do", task.Description, task.Status)
			}
			if task.Deadline == "" {
				t.Errorf("task %q has no deadline after enrichment", task.Description)
			}
			if task.Priority == "" {
				t.Errorf("task %q has no priority after enrichment", task.Description)
			}
			if task.Emoji == "" {
				t.Errorf("task %q has no emoji after enrichment", task.Description)
			}
		}
	}

	// Shorthand emoji codes from the extractor come back as Unicode.
	_, gym := plan.FindTask(plan.Categories[0].Tasks[0].ID)
	if gym.Emoji != "💪" {
		t.Errorf("gym emoji = %q, want 💪", gym.Emoji)
	}
}

func TestPlanGeneratorUpdate(t *testing.T) {
	existing := &domain.Plan{
		Title:   "Errands",
		Summary: "Things to do",
		Categories: []domain.Category{{
			Name: "Personal",
			Tasks: []domain.Task{{
				ID:          "task-1",
				Description: "Buy milk",
				Emoji:       "🥛",
				Priority:    domain.PriorityLow,
				Status:      domain.StatusInProgress,
			}},
		}},
	}

	structural := `{
		"title": "Errands",
		"summary": "Things to do",
		"categories": [
			{"category": "Personal", "tasks": [
				{"id": "task-1", "task": "Buy milk", "emoji": "🥛", "priority": "Low", "status": "In Progress"},
				{"id": "tmp-1", "task": "Call the dentist"}
			]}
		]
	}`

	t.Run("preserves surviving ids and enriches only new tasks", func(t *testing.T) {
		fake := &planFakeAI{
			structuralJSON: structural,
			details: map[string]string{
				"Call the dentist": `{"task": "Call the dentist", "category": "Personal", "deadline": "tomorrow", "priority": "High", "emoji": "🦷"}`,
			},
		}

		gen := NewPlanGenerator(fake.service())
		plan, err := gen.Generate(context.Background(), PlanRequest{Text: "also call the dentist", Existing: existing})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		_, milk := plan.FindTask("task-1")
		if milk == nil {
			t.Fatal("task-1 lost during update")
		}
		if milk.Status != domain.StatusInProgress {
			t.Errorf("task-1 status = %q, want In Progress", milk.Status)
		}

		_, dentist := plan.FindTask("tmp-1")
		if dentist == nil {
			t.Fatal("new task lost during update")
		}
		if dentist.Emoji != "🦷" || dentist.Priority != domain.PriorityHigh || dentist.Deadline != "tomorrow" {
			t.Errorf("new task not enriched: %+v", dentist)
		}
		if dentist.Status != domain.StatusToDo {
			t.Errorf("new task status = %q, want To Do", dentist.Status)
		}

		if len(fake.extractions) != 1 || fake.extractions[0] != "Call the dentist" {
			t.Errorf("extractor calls = %v, want only the new task", fake.extractions)
		}
	})

	t.Run("keeps new task on extraction failure", func(t *testing.T) {
		fake := &planFakeAI{
			structuralJSON: structural,
			details:        map[string]string{"Call the dentist": ""},
			extractErr:     errors.New("model unavailable"),
		}

		gen := NewPlanGenerator(fake.service())
		plan, err := gen.Generate(context.Background(), PlanRequest{Text: "also call the dentist", Existing: existing})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		_, dentist := plan.FindTask("tmp-1")
		if dentist == nil {
			t.Fatal("task dropped because enrichment failed")
		}
		if dentist.Description != "Call the dentist" {
			t.Errorf("description = %q", dentist.Description)
		}
		if dentist.Emoji != "" || dentist.Deadline != "" {
			t.Errorf("failed enrichment should leave structural fields only: %+v", dentist)
		}
		if dentist.Status != domain.StatusToDo {
			t.Errorf("status = %q, want To Do", dentist.Status)
		}
	})

	t.Run("extractor category creates a new bucket on exact-name mismatch", func(t *testing.T) {
		fake := &planFakeAI{
			structuralJSON: structural,
			details: map[string]string{
				"Call the dentist": `{"task": "Call the dentist", "category": "Health", "priority": "High", "emoji": "🦷"}`,
			},
		}

		gen := NewPlanGenerator(fake.service())
		plan, err := gen.Generate(context.Background(), PlanRequest{Text: "also call the dentist", Existing: existing})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		health, dentist := plan.FindTask("tmp-1")
		if dentist == nil {
			t.Fatal("new task lost")
		}
		if health.Name != "Health" {
			t.Errorf("new task in category %q, want Health", health.Name)
		}
		if _, milk := plan.FindTask("task-1"); milk == nil {
			t.Error("existing task lost during category move")
		}
	})
}

func TestPlanGeneratorTemplateHint(t *testing.T) {
	var seen string
	fake := &planFakeAI{
		structuralJSON: `{"title": "Day", "summary": "s", "categories": []}`,
	}
	svc := fake.service()
	inner := svc.generateJSON
	svc.generateJSON = func(prompt string) (string, error) {
		seen = prompt
		return inner(prompt)
	}

	gen := NewPlanGenerator(svc)
	if _, err := gen.Generate(context.Background(), PlanRequest{
		Text:     "plan my day",
		Template: "Morning / Afternoon / Evening",
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(seen, "Morning / Afternoon / Evening") {
		t.Error("template hint does not reach the creation prompt")
	}
}

func TestPlanGeneratorNoOutput(t *testing.T) {
	gen := NewPlanGenerator(&fakeAI{
		generateJSON: func(string) (string, error) { return "", nil },
	})

	_, err := gen.Generate(context.Background(), PlanRequest{Text: "anything"})
	var ge *domain.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationError, got %T: %v", err, err)
	}
}
