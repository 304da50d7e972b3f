package models

import "time"

// PersonalEntryStatus values for diary calendar entries.
const (
	PersonalEntryActive   = "ACTIVE"
	PersonalEntryArchived = "ARCHIVED"
)

// PersonalEntry is a member's own calendar entry from the personal_entries
// table.
type PersonalEntry struct {
	ID       string     `db:"id" json:"id"`
	UserID   string     `db:"user_id" json:"user_id"`
	Title    string     `db:"title" json:"title"`
	StartAt  time.Time  `db:"start_at" json:"start_at"`
	EndAt    *time.Time `db:"end_at" json:"end_at,omitempty"`
	IsAllDay bool       `db:"is_all_day" json:"is_all_day"`
	Location *string    `db:"location" json:"location,omitempty"`
	Color    *string    `db:"color" json:"color,omitempty"`
	Status   string     `db:"status" json:"status"`
}
