package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"voxplan-backend/internal/planner/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// planRecord is the storage row for a plan. The structured payload lives in
// a JSON column; metadata columns carry what the queries filter and sort on.
type planRecord struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index;not null"`
	Transcription string
	Payload       string `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (planRecord) TableName() string { return "plans" }

type itineraryRecord struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index;not null"`
	Transcription string
	Payload       string `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (itineraryRecord) TableName() string { return "itineraries" }

type reminderDispatch struct {
	TaskID string `gorm:"primaryKey"`
	PlanID string `gorm:"index"`
	SentAt time.Time
}

func (reminderDispatch) TableName() string { return "reminder_dispatches" }

// gormPlanRepository implements PlanRepository using GORM
type gormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM-based PlanRepository
func NewGormPlanRepository(db *gorm.DB) PlanRepository {
	db.AutoMigrate(&planRecord{})
	return &gormPlanRepository{db: db}
}

func (r *gormPlanRepository) Upsert(plan *domain.StoredPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	rec, err := toPlanRecord(plan)
	if err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (r *gormPlanRepository) FindByID(id string) (*domain.StoredPlan, error) {
	var rec planRecord
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return fromPlanRecord(&rec)
}

func (r *gormPlanRepository) FindByUserID(userID string) ([]*domain.StoredPlan, error) {
	var recs []planRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return fromPlanRecords(recs)
}

func (r *gormPlanRepository) FindAll() ([]*domain.StoredPlan, error) {
	var recs []planRecord
	if err := r.db.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromPlanRecords(recs)
}

func (r *gormPlanRepository) Delete(id string) error {
	return r.db.Delete(&planRecord{}, "id = ?", id).Error
}

func toPlanRecord(plan *domain.StoredPlan) (*planRecord, error) {
	payload, err := json.Marshal(plan.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan payload: %w", err)
	}
	return &planRecord{
		ID:            plan.ID,
		UserID:        plan.UserID,
		Transcription: plan.Transcription,
		Payload:       string(payload),
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}, nil
}

func fromPlanRecord(rec *planRecord) (*domain.StoredPlan, error) {
	var plan domain.Plan
	if err := json.Unmarshal([]byte(rec.Payload), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan payload %s: %w", rec.ID, err)
	}
	return &domain.StoredPlan{
		Plan:          plan,
		ID:            rec.ID,
		UserID:        rec.UserID,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		Transcription: rec.Transcription,
	}, nil
}

func fromPlanRecords(recs []planRecord) ([]*domain.StoredPlan, error) {
	plans := make([]*domain.StoredPlan, 0, len(recs))
	for i := range recs {
		plan, err := fromPlanRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// gormItineraryRepository implements ItineraryRepository using GORM
type gormItineraryRepository struct {
	db *gorm.DB
}

// NewGormItineraryRepository creates a new GORM-based ItineraryRepository
func NewGormItineraryRepository(db *gorm.DB) ItineraryRepository {
	db.AutoMigrate(&itineraryRecord{})
	return &gormItineraryRepository{db: db}
}

func (r *gormItineraryRepository) Upsert(itinerary *domain.StoredItinerary) error {
	if itinerary.ID == "" {
		itinerary.ID = uuid.New().String()
	}
	payload, err := json.Marshal(itinerary.Itinerary)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary payload: %w", err)
	}
	rec := &itineraryRecord{
		ID:            itinerary.ID,
		UserID:        itinerary.UserID,
		Transcription: itinerary.Transcription,
		Payload:       string(payload),
		CreatedAt:     itinerary.CreatedAt,
		UpdatedAt:     itinerary.UpdatedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (r *gormItineraryRepository) FindByID(id string) (*domain.StoredItinerary, error) {
	var rec itineraryRecord
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return fromItineraryRecord(&rec)
}

func (r *gormItineraryRepository) FindByUserID(userID string) ([]*domain.StoredItinerary, error) {
	var recs []itineraryRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	itineraries := make([]*domain.StoredItinerary, 0, len(recs))
	for i := range recs {
		it, err := fromItineraryRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, it)
	}
	return itineraries, nil
}

func (r *gormItineraryRepository) Delete(id string) error {
	return r.db.Delete(&itineraryRecord{}, "id = ?", id).Error
}

func fromItineraryRecord(rec *itineraryRecord) (*domain.StoredItinerary, error) {
	var itinerary domain.Itinerary
	if err := json.Unmarshal([]byte(rec.Payload), &itinerary); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary payload %s: %w", rec.ID, err)
	}
	return &domain.StoredItinerary{
		Itinerary:     itinerary,
		ID:            rec.ID,
		UserID:        rec.UserID,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		Transcription: rec.Transcription,
	}, nil
}

// gormReminderRepository implements ReminderRepository using GORM
type gormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GORM-based ReminderRepository
func NewGormReminderRepository(db *gorm.DB) ReminderRepository {
	db.AutoMigrate(&reminderDispatch{})
	return &gormReminderRepository{db: db}
}

func (r *gormReminderRepository) WasSent(taskID string) (bool, error) {
	var count int64
	err := r.db.Model(&reminderDispatch{}).Where("task_id = ?", taskID).Count(&count).Error
	return count > 0, err
}

func (r *gormReminderRepository) MarkSent(taskID, planID string, at time.Time) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&reminderDispatch{TaskID: taskID, PlanID: planID, SentAt: at}).Error
}
