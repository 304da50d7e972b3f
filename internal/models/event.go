package models

import "time"

// EventStatus values for congregation events.
const (
	EventStatusDraft     = "DRAFT"
	EventStatusPublished = "PUBLISHED"
	EventStatusCancelled = "CANCELLED"
)

// CongregationEvent is a row from the events table. A NULL congregation_id
// marks a global event visible to every congregation.
type CongregationEvent struct {
	ID             string     `db:"id" json:"id"`
	CongregationID *string    `db:"congregation_id" json:"congregation_id,omitempty"`
	Title          string     `db:"title" json:"title"`
	Description    *string    `db:"description" json:"description,omitempty"`
	Location       *string    `db:"location" json:"location,omitempty"`
	StartAt        time.Time  `db:"start_at" json:"start_at"`
	EndAt          *time.Time `db:"end_at" json:"end_at,omitempty"`
	IsAllDay       bool       `db:"is_all_day" json:"is_all_day"`
	Status         string     `db:"status" json:"status"`
	CreatedBy      string     `db:"created_by" json:"created_by"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
