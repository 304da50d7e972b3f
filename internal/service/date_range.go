package service

import (
	"time"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
)

// Years outside this span fall back to the current year rather than failing.
const (
	minCalendarYear = 1970
	maxCalendarYear = 2100
)

// ViewRange couples the queryable date range of a view with its navigation
// targets.
type ViewRange struct {
	Range      models.DateRange
	Navigation dto.Navigation
}

// DateRangeResolver computes the inclusive start/end dates for a view request
// and the previous/next/today navigation set. All inputs are clamped, never
// rejected; Resolve cannot fail.
type DateRangeResolver struct {
	now func() time.Time
}

// NewDateRangeResolver constructs a resolver using the wall clock.
func NewDateRangeResolver() *DateRangeResolver {
	return &DateRangeResolver{now: time.Now}
}

// Resolve computes the date range and navigation for the request.
func (r *DateRangeResolver) Resolve(req dto.ViewRequest) ViewRange {
	req = r.Normalize(req)
	anchor := time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, time.Local)
	today := r.today()

	switch req.View {
	case dto.ViewWeek:
		return r.resolveWeek(anchor, today)
	case dto.ViewDay:
		return r.resolveDay(anchor, today)
	default:
		return r.resolveMonth(anchor, today)
	}
}

// Normalize clamps the request to valid calendar values: an unknown view
// becomes month, an out-of-range year becomes the current year, an invalid
// month the current month, and an invalid day for the resulting month day 1.
func (r *DateRangeResolver) Normalize(req dto.ViewRequest) dto.ViewRequest {
	now := r.now()

	switch req.View {
	case dto.ViewMonth, dto.ViewWeek, dto.ViewDay:
	default:
		req.View = dto.ViewMonth
	}
	if req.Year < minCalendarYear || req.Year > maxCalendarYear {
		req.Year = now.Year()
	}
	if req.Month < 1 || req.Month > 12 {
		req.Month = int(now.Month())
	}
	if req.Day < 1 || req.Day > daysInMonth(req.Year, time.Month(req.Month)) {
		req.Day = 1
	}
	return req
}

func (r *DateRangeResolver) resolveMonth(anchor, today time.Time) ViewRange {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	end := start.AddDate(0, 1, -1)
	prev := start.AddDate(0, -1, 0)
	next := start.AddDate(0, 1, 0)
	return ViewRange{
		Range: models.DateRange{Start: start, End: end},
		Navigation: dto.Navigation{
			Previous: requestFor(dto.ViewMonth, prev),
			Next:     requestFor(dto.ViewMonth, next),
			Today:    requestFor(dto.ViewMonth, today),
		},
	}
}

func (r *DateRangeResolver) resolveWeek(anchor, today time.Time) ViewRange {
	// ISO convention: the week runs Monday through Sunday.
	offset := (int(anchor.Weekday()) + 6) % 7
	start := anchor.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return ViewRange{
		Range: models.DateRange{Start: start, End: end},
		Navigation: dto.Navigation{
			Previous: requestFor(dto.ViewWeek, anchor.AddDate(0, 0, -7)),
			Next:     requestFor(dto.ViewWeek, anchor.AddDate(0, 0, 7)),
			Today:    requestFor(dto.ViewWeek, today),
		},
	}
}

func (r *DateRangeResolver) resolveDay(anchor, today time.Time) ViewRange {
	return ViewRange{
		Range: models.DateRange{Start: anchor, End: anchor},
		Navigation: dto.Navigation{
			Previous: requestFor(dto.ViewDay, anchor.AddDate(0, 0, -1)),
			Next:     requestFor(dto.ViewDay, anchor.AddDate(0, 0, 1)),
			Today:    requestFor(dto.ViewDay, today),
		},
	}
}

func (r *DateRangeResolver) today() time.Time {
	now := r.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func requestFor(view dto.ViewType, t time.Time) dto.ViewRequest {
	return dto.ViewRequest{View: view, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
