package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"
)

// ItineraryGenerator creates or updates a multi-day travel itinerary from
// transcribed text. One prompt serves both modes: on update the model
// receives the serialized prior itinerary and produces a complete
// replacement. There is no id-preserving merge pass here, unlike plans.
type ItineraryGenerator struct {
	ai ai.GenerativeService
}

func NewItineraryGenerator(svc ai.GenerativeService) *ItineraryGenerator {
	return &ItineraryGenerator{ai: svc}
}

const itineraryPromptFormat = `You are a travel agent AI. Your job is to create or update a detailed, day-by-day travel itinerary based on the user's transcribed voice input.

Analyze the transcribed text to identify the destination, travel dates, and any planned activities.

You MUST structure the response as follows:
1. Create a descriptive "title" for the itinerary (e.g., "Weekend Trip to Paris").
2. Extract the "startDate" and "endDate" from the text (e.g., "2026-06-01").
3. Group all activities into a "days" array; each element represents one day of the trip.
4. For each day, specify the "day" number (starting from 1) and a "title" for that day's theme (e.g., "Cultural Exploration").
5. For each day, list the "activities" in chronological or logical order. Each activity must have a unique "id", a "time" (e.g., "9:00 AM"), a "description", and a "type" from: "travel", "food", "activity", "lodging".
6. Assign each activity a single, relevant Unicode emoji: a flight gets "✈️", a museum visit "🏛️", a dinner reservation "🍽️".

IMPORTANT: If the transcribed text is too vague or lacks the necessary information (like dates or a clear destination) to create a plausible itinerary, you MUST NOT invent details. Instead, return an empty JSON object {}.
%s
Your final output MUST be a single, complete JSON object.

Transcribed Text:
%s`

const itineraryUpdateNoteFormat = `
An existing itinerary has been provided. You must update it based on the new transcribed text. This may involve adding, modifying, or removing activities or changing dates. If an activity is being updated, try to maintain its original properties unless the new text specifies a change. The updated itinerary must be a complete and coherent version of the original with the new changes incorporated.

Existing Itinerary:
%s
`

// Generate returns the validated itinerary, or (nil, nil) when the model
// answered with the empty-object sentinel because the text lacked a
// destination or dates. Callers must check for nil explicitly; it is a
// negative outcome, not an error.
func (g *ItineraryGenerator) Generate(ctx context.Context, text string, existing *domain.Itinerary) (*domain.Itinerary, error) {
	updateNote := ""
	if existing != nil {
		serialized, err := json.MarshalIndent(existing, "", "  ")
		if err != nil {
			return nil, &domain.GenerationError{Step: "itinerary", Cause: fmt.Errorf("failed to serialize existing itinerary: %w", err)}
		}
		updateNote = fmt.Sprintf(itineraryUpdateNoteFormat, string(serialized))
	}

	raw, err := g.ai.GenerateJSON(ctx, fmt.Sprintf(itineraryPromptFormat, updateNote, text))
	if err != nil {
		return nil, &domain.GenerationError{Step: "itinerary", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Step: "itinerary"}
	}

	var itinerary domain.Itinerary
	if err := json.Unmarshal([]byte(raw), &itinerary); err != nil {
		return nil, &domain.ValidationError{Issues: []string{fmt.Sprintf("itinerary output is not valid JSON: %v", err)}}
	}

	if itinerary.IsEmpty() {
		return nil, nil
	}

	itinerary = domain.RepairItinerary(itinerary)
	if err := domain.ValidateItinerary(&itinerary); err != nil {
		return nil, err
	}
	return &itinerary, nil
}
