package models

import "time"

// HomecellMembership resolves a member to their active homecell, carrying the
// homecell fields the calendar needs without a second lookup.
type HomecellMembership struct {
	HomecellID         string     `db:"homecell_id" json:"homecell_id"`
	UserID             string     `db:"user_id" json:"user_id"`
	HomecellName       string     `db:"homecell_name" json:"homecell_name"`
	DefaultMeetingTime *time.Time `db:"default_meeting_time" json:"default_meeting_time,omitempty"`
}

// HomecellMeeting is a scheduled meeting of a homecell. MeetingTime is NULL
// when the homecell's configured default applies.
type HomecellMeeting struct {
	ID          string     `db:"id" json:"id"`
	HomecellID  string     `db:"homecell_id" json:"homecell_id"`
	MeetingDate time.Time  `db:"meeting_date" json:"meeting_date"`
	MeetingTime *time.Time `db:"meeting_time" json:"meeting_time,omitempty"`
	Topic       *string    `db:"topic" json:"topic,omitempty"`
	Location    *string    `db:"location" json:"location,omitempty"`
}
