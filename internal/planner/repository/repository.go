package repository

import (
	"time"

	"voxplan-backend/internal/planner/domain"
)

// PlanRepository defines the interface for plan persistence. History queries
// return newest-first by creation time.
type PlanRepository interface {
	Upsert(plan *domain.StoredPlan) error
	FindByID(id string) (*domain.StoredPlan, error)
	FindByUserID(userID string) ([]*domain.StoredPlan, error)
	FindAll() ([]*domain.StoredPlan, error)
	Delete(id string) error
}

// ItineraryRepository defines the interface for itinerary persistence.
type ItineraryRepository interface {
	Upsert(itinerary *domain.StoredItinerary) error
	FindByID(id string) (*domain.StoredItinerary, error)
	FindByUserID(userID string) ([]*domain.StoredItinerary, error)
	Delete(id string) error
}

// ReminderRepository tracks which task reminders have already been pushed,
// so the scheduler fires each reminder once.
type ReminderRepository interface {
	WasSent(taskID string) (bool, error)
	MarkSent(taskID, planID string, at time.Time) error
}
