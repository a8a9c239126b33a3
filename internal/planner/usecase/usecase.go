package usecase

import (
	"context"

	"voxplan-backend/internal/planner/domain"
)

// PlannerUsecase is the server-exposed entry point for the voice pipeline
// and plan/itinerary history.
//
// Every voice operation returns a result struct carrying either a payload or
// an Error string, never both and never a panic across this boundary, so the
// presentation layer has a single failure path.
type PlannerUsecase interface {
	// GenerateFromVoice transcribes audio, routes intent and generates a
	// plan or itinerary, persisting the outcome for the user.
	GenerateFromVoice(ctx context.Context, userID, audioDataURI string, hint ContextHint) *GenerateContentResult

	// UpdatePlanFromVoice transcribes audio and applies it to an existing
	// plan, preserving identifiers of persisting tasks.
	UpdatePlanFromVoice(ctx context.Context, userID, planID, audioDataURI string) *PlanUpdateResult

	// UpdateItineraryFromVoice transcribes audio and regenerates the whole
	// itinerary document.
	UpdateItineraryFromVoice(ctx context.Context, userID, itineraryID, audioDataURI string) *ItineraryUpdateResult

	// AddSubtasksFromVoice transcribes audio and appends the spoken
	// subtasks to one task inside a stored plan.
	AddSubtasksFromVoice(ctx context.Context, userID, planID, taskID, audioDataURI string) *SubtaskResult

	// Insights summarizes the user's history; advisory and fail-soft.
	Insights(ctx context.Context, userID string) *InsightsResult

	// History and direct-edit operations.
	ListPlans(userID string) ([]*domain.StoredPlan, error)
	GetPlan(userID, planID string) (*domain.StoredPlan, error)
	DeletePlan(userID, planID string) error
	SetTaskStatus(userID, planID, taskID string, status domain.TaskStatus) (*domain.StoredPlan, error)
	ListItineraries(userID string) ([]*domain.StoredItinerary, error)
	GetItinerary(userID, itineraryID string) (*domain.StoredItinerary, error)
	DeleteItinerary(userID, itineraryID string) error
}

// GenerateContentResult is the discriminated outcome of the
// voice-to-content operation. Type tells the caller which payload is set;
// on unsupported input Transcription is returned for user feedback.
type GenerateContentResult struct {
	Type          Intent                  `json:"type,omitempty"`
	Plan          *domain.StoredPlan      `json:"plan,omitempty"`
	Itinerary     *domain.StoredItinerary `json:"itinerary,omitempty"`
	Transcription string                  `json:"transcription,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

type PlanUpdateResult struct {
	Plan          *domain.StoredPlan `json:"plan,omitempty"`
	Transcription string             `json:"transcription,omitempty"`
	Error         string             `json:"error,omitempty"`
}

type ItineraryUpdateResult struct {
	Itinerary     *domain.StoredItinerary `json:"itinerary,omitempty"`
	Transcription string                  `json:"transcription,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

type SubtaskResult struct {
	Task          *domain.Task `json:"task,omitempty"`
	Transcription string       `json:"transcription,omitempty"`
	Error         string       `json:"error,omitempty"`
}

type InsightsResult struct {
	Insights *domain.InsightReport `json:"insights,omitempty"`
	Error    string                `json:"error,omitempty"`
}
