package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"

	"golang.org/x/sync/errgroup"
)

// relocation records that the task at plan.Categories[ci].Tasks[ti] should
// move to the named category bucket once the enrichment fan-out has joined.
type relocation struct {
	category string
	ci, ti   int
}

// PlanGenerator creates or updates a categorized task list from transcribed
// text. Structural generation is one prompt; per-task detail enrichment is
// delegated to the TaskDetailExtractor and fanned out concurrently.
type PlanGenerator struct {
	ai        ai.GenerativeService
	extractor *TaskDetailExtractor
}

func NewPlanGenerator(svc ai.GenerativeService) *PlanGenerator {
	return &PlanGenerator{
		ai:        svc,
		extractor: NewTaskDetailExtractor(svc),
	}
}

// PlanRequest carries the generator input. Existing switches the generator
// into update mode; Template optionally guides the structure of a new plan.
type PlanRequest struct {
	Text     string
	Existing *domain.Plan
	Template string
}

const createPlanPromptFormat = `You are a highly intelligent personal assistant. Your job is to create a structured plan from transcribed user input.

Instructions:
1. Carefully read the user's transcribed text.
2. Give the plan a concise, relevant "title" and a one-sentence "summary".
3. Group tasks into logical "categories" (e.g., "Work", "Personal"). Each category has a "category" name and a "tasks" array.
4. Each task has only a unique "id" and a "task" description. Do NOT include emoji, priority or deadline on tasks; those are filled in by a separate analysis step.
5. If the text mentions smaller steps for a task, create them as "subtasks", each with a unique "id", a "text" and "completed" set to false.
6. If a reminder is mentioned, extract its "time" and formulate a "question" for the notification, as a "reminder" object on the task.

Scenarios:
- Simple to-do list ("I need to buy milk, eggs, and bread"): create one task per item.
- Proactive scheduling ("I need to go to the gym, do work, and study, make a plan for me"): propose a logical schedule; the analysis step will attach suggested times.
%s
Your final output MUST be a single, complete JSON object with keys "title", "summary" and "categories".

User's Transcribed Text:
%s`

const updatePlanPromptFormat = `You are a highly intelligent personal assistant. An existing plan and new transcribed user input are provided. You MUST update the plan based on the new text. This can involve adding, modifying, or removing tasks and subtasks; intelligently merge the changes rather than simply appending.

Rules for identifiers:
- Every task or subtask that persists across the edit MUST keep its original "id" exactly as in the existing plan.
- Brand-new tasks or subtasks get a short temporary "id" that does not collide with any existing id.
- Keep each unchanged task's "status", "emoji", "priority", "deadline" and "subtasks" as they are.

Existing Plan:
%s

Your final output MUST be a single, complete JSON object with keys "title", "summary" and "categories".

User's Transcribed Text:
%s`

// Generate runs structural generation, defensively repairs the result, then
// enriches tasks through the detail extractor. In creation mode every task
// is enriched; in update mode only tasks whose id was not present in the
// prior plan.
func (g *PlanGenerator) Generate(ctx context.Context, req PlanRequest) (*domain.Plan, error) {
	prompt, err := g.buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := g.ai.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &domain.GenerationError{Step: "plan", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Step: "plan"}
	}

	var plan domain.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &domain.ValidationError{Issues: []string{fmt.Sprintf("plan output is not valid JSON: %v", err)}}
	}

	plan = domain.RepairPlan(plan)
	if err := domain.ValidatePlan(&plan); err != nil {
		return nil, err
	}

	// Update mode preserves every surviving id; tasks outside the original
	// id set are the newly created ones that still need details.
	var knownIDs map[string]bool
	if req.Existing != nil {
		knownIDs = req.Existing.TaskIDs()
	}

	g.enrich(ctx, &plan, knownIDs)
	return &plan, nil
}

func (g *PlanGenerator) buildPrompt(req PlanRequest) (string, error) {
	if req.Existing == nil {
		templateNote := ""
		if req.Template != "" {
			templateNote = fmt.Sprintf("\nUse this template to guide the structure of the output:\n%s\n", req.Template)
		}
		return fmt.Sprintf(createPlanPromptFormat, templateNote, req.Text), nil
	}

	serialized, err := json.MarshalIndent(req.Existing, "", "  ")
	if err != nil {
		return "", &domain.GenerationError{Step: "plan", Cause: fmt.Errorf("failed to serialize existing plan: %w", err)}
	}
	return fmt.Sprintf(updatePlanPromptFormat, string(serialized), req.Text), nil
}

// enrich fans out one extractor call per target task and joins before
// returning. Each goroutine writes only to its own task slot; category
// reassignments are collected under a lock and applied after the join.
// Extraction failures are logged and leave the task with its structural
// fields; they never fail the plan.
func (g *PlanGenerator) enrich(ctx context.Context, plan *domain.Plan, knownIDs map[string]bool) {
	var (
		mu    sync.Mutex
		moves []relocation
	)

	eg, ctx := errgroup.WithContext(ctx)
	for ci := range plan.Categories {
		for ti := range plan.Categories[ci].Tasks {
			task := &plan.Categories[ci].Tasks[ti]
			if knownIDs != nil && knownIDs[task.ID] {
				continue
			}

			currentCategory := plan.Categories[ci].Name
			eg.Go(func() error {
				details, err := g.extractor.Extract(ctx, task.Description)
				if err != nil {
					log.Printf("[PlanGenerator] enrichment failed for task %q, keeping structural fields: %v", task.Description, err)
					return nil
				}

				if task.Emoji == "" {
					task.Emoji = details.Emoji
				}
				if task.Priority == "" {
					task.Priority = details.Priority
				}
				if task.Deadline == "" {
					task.Deadline = details.Deadline
				}
				// Status stays whatever the structural pass produced;
				// RepairPlan already defaulted it to "To Do" when unset.

				if details.Category != "" && details.Category != currentCategory {
					mu.Lock()
					moves = append(moves, relocation{category: details.Category, ci: ci, ti: ti})
					mu.Unlock()
				}
				return nil
			})
		}
	}
	// Goroutines only log failures, so the join never returns an error.
	_ = eg.Wait()

	g.applyMoves(plan, moves)
}

// applyMoves relocates enriched tasks into their extractor-assigned
// categories. Matching is exact string equality, so "Work" and "work" are
// different buckets; a missing bucket is created at the end of the list.
// Categories emptied by a move are dropped.
func (g *PlanGenerator) applyMoves(plan *domain.Plan, moves []relocation) {
	if len(moves) == 0 {
		return
	}

	removed := make(map[int]map[int]bool)
	pending := make(map[string][]domain.Task)
	var order []string
	for _, m := range moves {
		if removed[m.ci] == nil {
			removed[m.ci] = make(map[int]bool)
		}
		removed[m.ci][m.ti] = true
		if _, ok := pending[m.category]; !ok {
			order = append(order, m.category)
		}
		pending[m.category] = append(pending[m.category], plan.Categories[m.ci].Tasks[m.ti])
	}

	var categories []domain.Category
	for ci, c := range plan.Categories {
		var kept []domain.Task
		for ti, t := range c.Tasks {
			if !removed[ci][ti] {
				kept = append(kept, t)
			}
		}
		c.Tasks = kept
		if tasks, ok := pending[c.Name]; ok {
			c.Tasks = append(c.Tasks, tasks...)
			delete(pending, c.Name)
		}
		if len(c.Tasks) > 0 {
			categories = append(categories, c)
		}
	}

	for _, name := range order {
		if tasks, ok := pending[name]; ok {
			categories = append(categories, domain.Category{Name: name, Tasks: tasks})
		}
	}
	plan.Categories = categories
}
