package models

import "time"

// SourceKind tags which collaborator produced a CalendarEvent. The set is
// fixed; adapters never invent new kinds at runtime.
type SourceKind string

const (
	SourceGlobal       SourceKind = "global"
	SourceCongregation SourceKind = "congregation"
	SourcePersonal     SourceKind = "personal"
	SourceMorningStudy SourceKind = "morning_study"
	SourceHomecell     SourceKind = "homecell"
)

// Default display colors per source. Personal entries may override theirs.
const (
	ColorGlobal           = "#2563eb"
	ColorCongregation     = "#0d9488"
	ColorPersonal         = "#7c3aed"
	ColorMorningStudy     = "#f59e0b"
	ColorMorningStudyDone = "#16a34a"
	ColorHomecell         = "#db2777"
)

// CalendarEvent is the normalized shape every event source produces. Raw
// per-source rows never cross the adapter boundary.
type CalendarEvent struct {
	ID            string     `json:"id"`
	Source        SourceKind `json:"source"`
	Title         string     `json:"title"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	IsAllDay      bool       `json:"is_all_day"`
	Location      *string    `json:"location,omitempty"`
	Color         string     `json:"color"`
	NavigationURL *string    `json:"navigation_url,omitempty"`
	Completed     *bool      `json:"completed,omitempty"`
}

// Duration returns the event's effective duration. Events without an end
// default to one hour, matching the day-view layout contract.
func (e CalendarEvent) Duration() time.Duration {
	if e.EndAt == nil {
		return time.Hour
	}
	d := e.EndAt.Sub(e.StartAt)
	if d < 0 {
		return 0
	}
	return d
}

// EffectiveEnd returns EndAt or the implied one-hour end.
func (e CalendarEvent) EffectiveEnd() time.Time {
	if e.EndAt != nil {
		return *e.EndAt
	}
	return e.StartAt.Add(time.Hour)
}

// Scope identifies the acting member and, when resolved, their primary
// congregation. A nil CongregationID is a valid empty-result state for the
// congregation-scoped sources, never an error.
type Scope struct {
	UserID         string
	CongregationID *string
}

// DateRange is an inclusive span of calendar dates. Time components of Start
// and End are zero; Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days in the range, inclusive. The span
// is computed on normalized UTC dates: wall-clock duration math would lose a
// day in months containing a DST spring-forward transition.
func (r DateRange) Days() int {
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}
