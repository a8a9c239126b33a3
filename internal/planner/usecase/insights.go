package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/pkg/ai"
)

// InsightGenerator summarizes a user's plan and itinerary history into a few
// short encouraging observations. Best-effort and read-only: a failure here
// never blocks or corrupts plan state.
type InsightGenerator struct {
	ai ai.GenerativeService
}

func NewInsightGenerator(svc ai.GenerativeService) *InsightGenerator {
	return &InsightGenerator{ai: svc}
}

const insightsPromptFormat = `You are a friendly and encouraging personal productivity assistant. Your job is to analyze a user's history of plans and travels and provide short, actionable, positive insights.

You MUST generate 3-5 unique insights based on the data. Focus on patterns, achievements, and gentle suggestions.
- Frame insights positively. Instead of "You are bad at finishing tasks", say "You have a few tasks in progress. Let's get them done!".
- Keep each insight concise (1-2 sentences) and give it a relevant "emoji".
- Identify a "productivityPeak" day of the week only if a clear pattern exists.
- Comment on travel patterns if they exist (e.g., "You seem to love weekend trips!").
- Do NOT make up statistics. If there is not enough data for a meaningful insight, provide a generic encouraging message instead.

User's Plan History:
%s

User's Itinerary History:
%s

Your final output MUST be a single JSON object: {"insights": [{"emoji": "...", "text": "..."}], "productivityPeak": "..."} with productivityPeak omitted when no pattern exists.`

func (g *InsightGenerator) Generate(ctx context.Context, plans []*domain.StoredPlan, itineraries []*domain.StoredItinerary) (*domain.InsightReport, error) {
	planJSON, err := json.Marshal(plans)
	if err != nil {
		return nil, &domain.GenerationError{Step: "insights", Cause: err}
	}
	itineraryJSON, err := json.Marshal(itineraries)
	if err != nil {
		return nil, &domain.GenerationError{Step: "insights", Cause: err}
	}

	raw, err := g.ai.GenerateJSON(ctx, fmt.Sprintf(insightsPromptFormat, string(planJSON), string(itineraryJSON)))
	if err != nil {
		return nil, &domain.GenerationError{Step: "insights", Cause: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.GenerationError{Step: "insights"}
	}

	var report domain.InsightReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, &domain.ValidationError{Issues: []string{fmt.Sprintf("insight output is not valid JSON: %v", err)}}
	}
	if len(report.Insights) > 5 {
		report.Insights = report.Insights[:5]
	}
	return &report, nil
}
