package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"
)

// TaskDetails is the enrichment contract for a single task description.
type TaskDetails struct {
	Description string          `json:"task"`
	Category    string          `json:"category"`
	Deadline    string          `json:"deadline,omitempty"`
	Priority    domain.Priority `json:"priority"`
	Emoji       string          `json:"emoji"`
}

// TaskDetailExtractor derives category, priority, deadline and a
// representative emoji for one task description.
type TaskDetailExtractor struct {
	ai ai.GenerativeService
}

func NewTaskDetailExtractor(svc ai.GenerativeService) *TaskDetailExtractor {
	return &TaskDetailExtractor{ai: svc}
}

const taskDetailsPromptFormat = `You are a task analysis expert. Your sole job is to extract the details of a single task from the provided text.

Text: %q

You MUST extract the following information:
- "task": what is the task?
- "category": what category does it belong to (e.g., "Work", "Personal")?
- "deadline": if a time or day is mentioned, extract it precisely; otherwise omit it.
- "priority": "High", "Medium" or "Low".
- "emoji": a single, relevant Unicode emoji that visually represents the task. If the text contains an emoji shorthand code (like ":briefcase:" or ":tada:"), convert it to the corresponding Unicode character.

Your output must be a single JSON object with exactly those keys.`

// Extract runs the enrichment prompt. A no-output response yields an
// ExtractionError, which the plan generator treats as non-fatal per task.
func (e *TaskDetailExtractor) Extract(ctx context.Context, description string) (*TaskDetails, error) {
	raw, err := e.ai.GenerateJSON(ctx, fmt.Sprintf(taskDetailsPromptFormat, description))
	if err != nil {
		return nil, &domain.ExtractionError{Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.ExtractionError{}
	}

	var details TaskDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil, &domain.ExtractionError{Cause: err}
	}

	details.Priority = normalizePriority(details.Priority)
	details.Emoji = domain.ResolveEmojiShorthand(details.Emoji)
	return &details, nil
}

// normalizePriority title-cases the model's label and defaults anything
// unrecognized to Medium.
func normalizePriority(p domain.Priority) domain.Priority {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "high":
		return domain.PriorityHigh
	case "low":
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}
