package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"
)

// SubtaskAugmenter appends spoken subtasks to an existing task. Existing
// subtasks are never removed, edited or reordered; the output is rebuilt
// from the original list plus the model's additions, so a misbehaving model
// cannot violate the append-only contract.
type SubtaskAugmenter struct {
	ai ai.GenerativeService
}

func NewSubtaskAugmenter(svc ai.GenerativeService) *SubtaskAugmenter {
	return &SubtaskAugmenter{ai: svc}
}

const subtasksPromptFormat = `You are a personal assistant. Your job is to add subtasks to an existing task based on transcribed user input.

The user has provided an existing task object and a transcription of their voice describing the new subtasks. Analyze the transcribed text and identify all the individual subtasks mentioned.

For each new subtask you identify, you MUST:
1. Assign a unique "id".
2. Set its "completed" status to false.
3. Append it to the "subtasks" array of the existing task.

If the "subtasks" array already has items, append the new ones after them. Do not modify any other properties of the existing task.

Your final output MUST be the single, complete, updated task object in JSON format.

Existing Task:
%s

Transcribed Text for Subtasks:
%s`

// Augment returns a copy of task with the newly spoken subtasks appended.
// Fresh ids avoid collisions with existing subtask ids, and completed is
// forced to false on every new entry regardless of what the model emitted.
func (a *SubtaskAugmenter) Augment(ctx context.Context, task domain.Task, text string) (*domain.Task, error) {
	input := task.Clone()
	if input.Subtasks == nil {
		input.Subtasks = []domain.Subtask{}
	}

	serialized, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, &domain.GenerationError{Step: "subtasks", Cause: fmt.Errorf("failed to serialize task: %w", err)}
	}

	raw, err := a.ai.GenerateJSON(ctx, fmt.Sprintf(subtasksPromptFormat, string(serialized), text))
	if err != nil {
		return nil, &domain.GenerationError{Step: "subtasks", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Step: "subtasks"}
	}

	var generated domain.Task
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		return nil, &domain.ValidationError{Issues: []string{fmt.Sprintf("subtask output is not valid JSON: %v", err)}}
	}

	existingIDs := make(map[string]bool, len(input.Subtasks))
	for _, s := range input.Subtasks {
		existingIDs[s.ID] = true
	}

	// Rebuild: the original subtasks untouched, then each genuinely new
	// subtask with a collision-free id and completed reset to false.
	out := input
	for _, s := range generated.Subtasks {
		if s.ID != "" && existingIDs[s.ID] {
			continue
		}
		if s.Text == "" {
			continue
		}
		s.ID = freshSubtaskID(existingIDs)
		s.Completed = false
		existingIDs[s.ID] = true
		out.Subtasks = append(out.Subtasks, s)
	}

	return &out, nil
}

func freshSubtaskID(taken map[string]bool) string {
	for {
		id := domain.NewID("subtask")
		if !taken[id] {
			return id
		}
	}
}
