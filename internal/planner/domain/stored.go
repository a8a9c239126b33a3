package domain

import "time"

// StoredPlan is a Plan plus persistence metadata. Metadata is stamped at the
// orchestration boundary; the generators only ever see the embedded Plan.
type StoredPlan struct {
	Plan
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Transcription string    `json:"transcription"`
}

// StoredItinerary is an Itinerary plus persistence metadata.
type StoredItinerary struct {
	Itinerary
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Transcription string    `json:"transcription"`
}
