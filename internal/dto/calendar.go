package dto

import "github.com/noah-isme/gereja-member-api/internal/models"

// ViewType selects one of the three calendar renderings.
type ViewType string

const (
	ViewMonth ViewType = "month"
	ViewWeek  ViewType = "week"
	ViewDay   ViewType = "day"
)

// ViewRequest addresses a calendar view by type and anchor date. Invalid
// anchor values are clamped, never rejected.
type ViewRequest struct {
	View  ViewType `json:"view"`
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Day   int      `json:"day"`
}

// Navigation carries the previous/next/today targets for a resolved view.
type Navigation struct {
	Previous ViewRequest `json:"previous"`
	Next     ViewRequest `json:"next"`
	Today    ViewRequest `json:"today"`
}

// RangeResponse answers the range-resolution endpoint.
type RangeResponse struct {
	View       ViewType   `json:"view"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Navigation Navigation `json:"navigation"`
}

// EventPill is the compact rendering of an event inside a month or week cell.
type EventPill struct {
	ID            string            `json:"id"`
	Source        models.SourceKind `json:"source"`
	Label         string            `json:"label"`
	TimeLabel     string            `json:"time_label,omitempty"`
	IsAllDay      bool              `json:"is_all_day"`
	Color         string            `json:"color"`
	NavigationURL *string           `json:"navigation_url,omitempty"`
}

// MonthCell is one square of the month grid. Placeholder cells outside the
// anchor month carry InMonth=false and no events.
type MonthCell struct {
	Date      string      `json:"date,omitempty"`
	Day       int         `json:"day,omitempty"`
	InMonth   bool        `json:"in_month"`
	IsToday   bool        `json:"is_today"`
	Events    []EventPill `json:"events,omitempty"`
	MoreCount int         `json:"more_count,omitempty"`
}

// MonthViewModel renders a Sunday-first month grid.
type MonthViewModel struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	Weeks     [][]MonthCell `json:"weeks"`
}

// WeekDayCard is one day card of the Monday-first week strip.
type WeekDayCard struct {
	Date      string      `json:"date"`
	Weekday   string      `json:"weekday"`
	Day       int         `json:"day"`
	IsToday   bool        `json:"is_today"`
	Events    []EventPill `json:"events,omitempty"`
	MoreCount int         `json:"more_count,omitempty"`
}

// WeekViewModel renders seven day cards from Monday through Sunday.
type WeekViewModel struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []WeekDayCard `json:"days"`
}

// TimedBlock is a positioned event block in the day view. TopOffset and
// Height are rendering units relative to the containing hour row; the
// Start/End labels always reflect the true, unclamped times.
type TimedBlock struct {
	ID            string            `json:"id"`
	Source        models.SourceKind `json:"source"`
	Title         string            `json:"title"`
	StartLabel    string            `json:"start_label"`
	EndLabel      string            `json:"end_label"`
	TopOffset     int               `json:"top_offset"`
	Height        int               `json:"height"`
	Color         string            `json:"color"`
	Location      *string           `json:"location,omitempty"`
	NavigationURL *string           `json:"navigation_url,omitempty"`
	Completed     *bool             `json:"completed,omitempty"`
}

// HourRow is one row of the 24-hour axis.
type HourRow struct {
	Hour   int          `json:"hour"`
	Label  string       `json:"label"`
	Blocks []TimedBlock `json:"blocks,omitempty"`
}

// DayViewModel renders a single day: an all-day band plus the hour axis.
// IsEmpty is set when the day has no events at all so the client can show a
// create-one affordance instead of a blank grid.
type DayViewModel struct {
	Date    string      `json:"date"`
	IsToday bool        `json:"is_today"`
	IsEmpty bool        `json:"is_empty"`
	AllDay  []EventPill `json:"all_day,omitempty"`
	Hours   []HourRow   `json:"hours"`
}

// CalendarViewResponse is the envelope for the view endpoint; exactly one of
// Month, Week, Day is populated according to View.
type CalendarViewResponse struct {
	View       ViewType        `json:"view"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Navigation Navigation      `json:"navigation"`
	Month      *MonthViewModel `json:"month,omitempty"`
	Week       *WeekViewModel  `json:"week,omitempty"`
	Day        *DayViewModel   `json:"day,omitempty"`
}
