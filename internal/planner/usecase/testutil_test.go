package usecase

import (
	"context"
	"errors"
	"time"

	"voxplan-backend/internal/planner/domain"
)

// fakeAI scripts the GenerativeService for tests. Handlers get the full
// prompt so they can branch on which pipeline step is calling.
type fakeAI struct {
	generateJSON func(prompt string) (string, error)
	transcribe   func(mimeType, data string) (string, error)
}

func (f *fakeAI) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if f.generateJSON == nil {
		return "", errors.New("fakeAI: no generateJSON handler")
	}
	return f.generateJSON(prompt)
}

func (f *fakeAI) Transcribe(ctx context.Context, mimeType, data string) (string, error) {
	if f.transcribe == nil {
		return "", errors.New("fakeAI: no transcribe handler")
	}
	return f.transcribe(mimeType, data)
}

// memPlanRepo is an in-memory PlanRepository.
type memPlanRepo struct {
	plans map[string]*domain.StoredPlan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[string]*domain.StoredPlan)}
}

func (r *memPlanRepo) Upsert(p *domain.StoredPlan) error {
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *memPlanRepo) FindByID(id string) (*domain.StoredPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlanRepo) FindByUserID(userID string) ([]*domain.StoredPlan, error) {
	var out []*domain.StoredPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPlanRepo) FindAll() ([]*domain.StoredPlan, error) {
	var out []*domain.StoredPlan
	for _, p := range r.plans {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPlanRepo) Delete(id string) error {
	delete(r.plans, id)
	return nil
}

// memItineraryRepo is an in-memory ItineraryRepository.
type memItineraryRepo struct {
	itineraries map[string]*domain.StoredItinerary
}

func newMemItineraryRepo() *memItineraryRepo {
	return &memItineraryRepo{itineraries: make(map[string]*domain.StoredItinerary)}
}

func (r *memItineraryRepo) Upsert(it *domain.StoredItinerary) error {
	cp := *it
	r.itineraries[it.ID] = &cp
	return nil
}

func (r *memItineraryRepo) FindByID(id string) (*domain.StoredItinerary, error) {
	it, ok := r.itineraries[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItineraryRepo) FindByUserID(userID string) ([]*domain.StoredItinerary, error) {
	var out []*domain.StoredItinerary
	for _, it := range r.itineraries {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memItineraryRepo) Delete(id string) error {
	delete(r.itineraries, id)
	return nil
}

func storedPlanFixture(id, userID string) *domain.StoredPlan {
	now := time.Now()
	return &domain.StoredPlan{
		Plan: domain.Plan{
			Title:   "Errands",
			Summary: "Things to do",
			Categories: []domain.Category{{
				Name: "Personal",
				Tasks: []domain.Task{{
					ID:          "task-1",
					Description: "Pack for the beach",
					Status:      domain.StatusToDo,
					Subtasks:    []domain.Subtask{{ID: "s1", Text: "find swimsuit", Completed: true}},
				}},
			}},
		},
		ID:            id,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Transcription: "original recording",
	}
}

const audioURI = "data:audio/webm;base64,UklGRg=="
