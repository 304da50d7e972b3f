package models

import "time"

// MorningStudySession is a row from the morning_study_sessions table joined
// with the requesting user's completion record. A NULL congregation_id marks
// a session offered to every congregation.
type MorningStudySession struct {
	ID             string    `db:"id" json:"id"`
	CongregationID *string   `db:"congregation_id" json:"congregation_id,omitempty"`
	Title          *string   `db:"title" json:"title,omitempty"`
	Scripture      *string   `db:"scripture" json:"scripture,omitempty"`
	StartAt        time.Time `db:"start_at" json:"start_at"`
	Completed      bool      `db:"completed" json:"completed"`
}
