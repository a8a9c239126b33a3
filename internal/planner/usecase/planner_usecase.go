package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/internal/planner/repository"
	"voxplan-backend/pkg/ai"

	"github.com/google/uuid"
)

// User-facing failure messages. Transcription problems are reported
// verbatim; everything else gets a generic message so prompt internals
// never leak to the UI.
const (
	msgTranscriptionFailed = "Failed to transcribe audio. The recording might be silent or too short."
	msgUnsupportedRequest  = "I wasn't able to create a plan or itinerary from that. Please try describing your tasks or trip more directly."
	msgGenerationFailed    = "Generation failed. Please try again."
	msgItineraryTooVague   = "Could not update the itinerary from the provided text. Please ensure it contains enough detail."
)

var errNotFound = errors.New("not found")

// plannerUsecase wires the pipeline components to persistence. All
// components share one injected GenerativeService; there is no hidden
// module-level model handle.
type plannerUsecase struct {
	transcriber   *Transcriber
	router        *IntentRouter
	planGen       *PlanGenerator
	itineraryGen  *ItineraryGenerator
	augmenter     *SubtaskAugmenter
	insightGen    *InsightGenerator
	planRepo      repository.PlanRepository
	itineraryRepo repository.ItineraryRepository
}

// NewPlannerUsecase creates the facade over a single AI provider and the
// storage repositories.
func NewPlannerUsecase(svc ai.GenerativeService, planRepo repository.PlanRepository, itineraryRepo repository.ItineraryRepository) PlannerUsecase {
	return &plannerUsecase{
		transcriber:   NewTranscriber(svc),
		router:        NewIntentRouter(svc),
		planGen:       NewPlanGenerator(svc),
		itineraryGen:  NewItineraryGenerator(svc),
		augmenter:     NewSubtaskAugmenter(svc),
		insightGen:    NewInsightGenerator(svc),
		planRepo:      planRepo,
		itineraryRepo: itineraryRepo,
	}
}

func (u *plannerUsecase) GenerateFromVoice(ctx context.Context, userID, audioDataURI string, hint ContextHint) *GenerateContentResult {
	transcription, err := u.transcriber.Transcribe(ctx, audioDataURI)
	if err != nil {
		log.Printf("[Planner] transcription failed: %v", err)
		return &GenerateContentResult{Error: msgTranscriptionFailed}
	}

	intent, err := u.router.Route(ctx, transcription, hint)
	if err != nil {
		log.Printf("[Planner] intent routing failed: %v", err)
		return &GenerateContentResult{Transcription: transcription, Error: msgGenerationFailed}
	}

	switch intent {
	case IntentPlan:
		plan, err := u.planGen.Generate(ctx, PlanRequest{Text: transcription})
		if err != nil {
			log.Printf("[Planner] plan generation failed: %v", err)
			return &GenerateContentResult{Transcription: transcription, Error: msgGenerationFailed}
		}
		stored := u.stampPlan(userID, transcription, plan)
		if err := u.planRepo.Upsert(stored); err != nil {
			log.Printf("[Planner] plan persist failed: %v", err)
			return &GenerateContentResult{Transcription: transcription, Error: msgGenerationFailed}
		}
		return &GenerateContentResult{Type: IntentPlan, Plan: stored, Transcription: transcription}

	case IntentItinerary:
		itinerary, err := u.itineraryGen.Generate(ctx, transcription, nil)
		if err != nil {
			log.Printf("[Planner] itinerary generation failed: %v", err)
			return &GenerateContentResult{Transcription: transcription, Error: msgGenerationFailed}
		}
		if itinerary == nil {
			// Sentinel empty result: not enough information, not an error.
			return &GenerateContentResult{Type: IntentUnsupported, Transcription: transcription, Error: msgUnsupportedRequest}
		}
		stored := u.stampItinerary(userID, transcription, itinerary)
		if err := u.itineraryRepo.Upsert(stored); err != nil {
			log.Printf("[Planner] itinerary persist failed: %v", err)
			return &GenerateContentResult{Transcription: transcription, Error: msgGenerationFailed}
		}
		return &GenerateContentResult{Type: IntentItinerary, Itinerary: stored, Transcription: transcription}

	default:
		return &GenerateContentResult{Type: IntentUnsupported, Transcription: transcription, Error: msgUnsupportedRequest}
	}
}

func (u *plannerUsecase) UpdatePlanFromVoice(ctx context.Context, userID, planID, audioDataURI string) *PlanUpdateResult {
	stored, err := u.ownedPlan(userID, planID)
	if err != nil {
		return &PlanUpdateResult{Error: "Plan not found."}
	}

	transcription, err := u.transcriber.Transcribe(ctx, audioDataURI)
	if err != nil {
		log.Printf("[Planner] transcription failed: %v", err)
		return &PlanUpdateResult{Error: msgTranscriptionFailed}
	}

	existing := stored.Plan
	updated, err := u.planGen.Generate(ctx, PlanRequest{Text: transcription, Existing: &existing})
	if err != nil {
		log.Printf("[Planner] plan update failed: %v", err)
		return &PlanUpdateResult{Transcription: transcription, Error: msgGenerationFailed}
	}

	stored.Plan = *updated
	stored.Transcription = transcription
	stored.UpdatedAt = time.Now()
	if err := u.planRepo.Upsert(stored); err != nil {
		log.Printf("[Planner] plan persist failed: %v", err)
		return &PlanUpdateResult{Transcription: transcription, Error: msgGenerationFailed}
	}
	return &PlanUpdateResult{Plan: stored, Transcription: transcription}
}

func (u *plannerUsecase) UpdateItineraryFromVoice(ctx context.Context, userID, itineraryID, audioDataURI string) *ItineraryUpdateResult {
	stored, err := u.ownedItinerary(userID, itineraryID)
	if err != nil {
		return &ItineraryUpdateResult{Error: "Itinerary not found."}
	}

	transcription, err := u.transcriber.Transcribe(ctx, audioDataURI)
	if err != nil {
		log.Printf("[Planner] transcription failed: %v", err)
		return &ItineraryUpdateResult{Error: msgTranscriptionFailed}
	}

	existing := stored.Itinerary
	updated, err := u.itineraryGen.Generate(ctx, transcription, &existing)
	if err != nil {
		log.Printf("[Planner] itinerary update failed: %v", err)
		return &ItineraryUpdateResult{Transcription: transcription, Error: msgGenerationFailed}
	}
	if updated == nil {
		return &ItineraryUpdateResult{Transcription: transcription, Error: msgItineraryTooVague}
	}

	stored.Itinerary = *updated
	stored.Transcription = transcription
	stored.UpdatedAt = time.Now()
	if err := u.itineraryRepo.Upsert(stored); err != nil {
		log.Printf("[Planner] itinerary persist failed: %v", err)
		return &ItineraryUpdateResult{Transcription: transcription, Error: msgGenerationFailed}
	}
	return &ItineraryUpdateResult{Itinerary: stored, Transcription: transcription}
}

func (u *plannerUsecase) AddSubtasksFromVoice(ctx context.Context, userID, planID, taskID, audioDataURI string) *SubtaskResult {
	stored, err := u.ownedPlan(userID, planID)
	if err != nil {
		return &SubtaskResult{Error: "Plan not found."}
	}

	_, task := stored.Plan.FindTask(taskID)
	if task == nil {
		return &SubtaskResult{Error: "Task not found."}
	}

	transcription, err := u.transcriber.Transcribe(ctx, audioDataURI)
	if err != nil {
		log.Printf("[Planner] transcription failed: %v", err)
		return &SubtaskResult{Error: msgTranscriptionFailed}
	}

	updated, err := u.augmenter.Augment(ctx, *task, transcription)
	if err != nil {
		log.Printf("[Planner] subtask augmentation failed: %v", err)
		return &SubtaskResult{Transcription: transcription, Error: msgGenerationFailed}
	}

	*task = *updated
	stored.UpdatedAt = time.Now()
	if err := u.planRepo.Upsert(stored); err != nil {
		log.Printf("[Planner] plan persist failed: %v", err)
		return &SubtaskResult{Transcription: transcription, Error: msgGenerationFailed}
	}
	return &SubtaskResult{Task: updated, Transcription: transcription}
}

func (u *plannerUsecase) Insights(ctx context.Context, userID string) *InsightsResult {
	plans, err := u.planRepo.FindByUserID(userID)
	if err != nil {
		log.Printf("[Planner] loading plan history failed: %v", err)
		return &InsightsResult{Error: "Could not generate insights from your data."}
	}
	itineraries, err := u.itineraryRepo.FindByUserID(userID)
	if err != nil {
		log.Printf("[Planner] loading itinerary history failed: %v", err)
		return &InsightsResult{Error: "Could not generate insights from your data."}
	}

	report, err := u.insightGen.Generate(ctx, plans, itineraries)
	if err != nil {
		log.Printf("[Planner] insight generation failed: %v", err)
		return &InsightsResult{Error: "Could not generate insights from your data."}
	}
	return &InsightsResult{Insights: report}
}

func (u *plannerUsecase) ListPlans(userID string) ([]*domain.StoredPlan, error) {
	return u.planRepo.FindByUserID(userID)
}

func (u *plannerUsecase) GetPlan(userID, planID string) (*domain.StoredPlan, error) {
	return u.ownedPlan(userID, planID)
}

func (u *plannerUsecase) DeletePlan(userID, planID string) error {
	if _, err := u.ownedPlan(userID, planID); err != nil {
		return err
	}
	return u.planRepo.Delete(planID)
}

func (u *plannerUsecase) SetTaskStatus(userID, planID, taskID string, status domain.TaskStatus) (*domain.StoredPlan, error) {
	switch status {
	case domain.StatusToDo, domain.StatusInProgress, domain.StatusDone:
	default:
		return nil, errors.New("invalid status")
	}

	stored, err := u.ownedPlan(userID, planID)
	if err != nil {
		return nil, err
	}
	_, task := stored.Plan.FindTask(taskID)
	if task == nil {
		return nil, errNotFound
	}

	task.Status = status
	stored.UpdatedAt = time.Now()
	if err := u.planRepo.Upsert(stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (u *plannerUsecase) ListItineraries(userID string) ([]*domain.StoredItinerary, error) {
	return u.itineraryRepo.FindByUserID(userID)
}

func (u *plannerUsecase) GetItinerary(userID, itineraryID string) (*domain.StoredItinerary, error) {
	return u.ownedItinerary(userID, itineraryID)
}

func (u *plannerUsecase) DeleteItinerary(userID, itineraryID string) error {
	if _, err := u.ownedItinerary(userID, itineraryID); err != nil {
		return err
	}
	return u.itineraryRepo.Delete(itineraryID)
}

// IsNotFound reports whether an error from the history operations means the
// record does not exist or belongs to another user.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func (u *plannerUsecase) ownedPlan(userID, planID string) (*domain.StoredPlan, error) {
	stored, err := u.planRepo.FindByID(planID)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != userID {
		return nil, errNotFound
	}
	return stored, nil
}

func (u *plannerUsecase) ownedItinerary(userID, itineraryID string) (*domain.StoredItinerary, error) {
	stored, err := u.itineraryRepo.FindByID(itineraryID)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != userID {
		return nil, errNotFound
	}
	return stored, nil
}

func (u *plannerUsecase) stampPlan(userID, transcription string, plan *domain.Plan) *domain.StoredPlan {
	now := time.Now()
	return &domain.StoredPlan{
		Plan:          *plan,
		ID:            uuid.New().String(),
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Transcription: transcription,
	}
}

func (u *plannerUsecase) stampItinerary(userID, transcription string, itinerary *domain.Itinerary) *domain.StoredItinerary {
	now := time.Now()
	return &domain.StoredItinerary{
		Itinerary:     *itinerary,
		ID:            uuid.New().String(),
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Transcription: transcription,
	}
}
