package service

import (
	"time"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
	"github.com/noah-isme/gereja-member-api/pkg/config"
)

// Month cells are narrow, so titles truncate tighter than in the week view.
const monthTitleLimit = 18

// buildMonthView lays the month out as a Sunday-first grid of full weeks.
// Cells before the 1st and after the last day are placeholders.
func buildMonthView(rng models.DateRange, idx *TimeBucketIndex, today time.Time, cfg config.CalendarConfig) *dto.MonthViewModel {
	limit := cfg.MonthCellCap
	if limit <= 0 {
		limit = 3
	}

	first := rng.Start
	leading := int(first.Weekday())
	totalCells := leading + rng.Days()
	if rem := totalCells % 7; rem != 0 {
		totalCells += 7 - rem
	}

	weeks := make([][]dto.MonthCell, 0, totalCells/7)
	week := make([]dto.MonthCell, 0, 7)
	for i := 0; i < totalCells; i++ {
		dayOffset := i - leading
		if dayOffset < 0 || dayOffset >= rng.Days() {
			week = append(week, dto.MonthCell{})
		} else {
			date := first.AddDate(0, 0, dayOffset)
			week = append(week, buildMonthCell(date, idx, today, limit))
		}
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]dto.MonthCell, 0, 7)
		}
	}

	return &dto.MonthViewModel{
		Year:      first.Year(),
		Month:     int(first.Month()),
		MonthName: first.Month().String(),
		Weeks:     weeks,
	}
}

func buildMonthCell(date time.Time, idx *TimeBucketIndex, today time.Time, limit int) dto.MonthCell {
	bucket := idx.EventsOn(date)
	cell := dto.MonthCell{
		Date:    date.Format(dateKeyLayout),
		Day:     date.Day(),
		InMonth: true,
		IsToday: sameDate(date, today),
	}
	for i, event := range bucket {
		if i >= limit {
			cell.MoreCount = len(bucket) - limit
			break
		}
		cell.Events = append(cell.Events, eventPill(event, monthTitleLimit))
	}
	return cell
}

// eventPill renders the compact cell representation shared by the month and
// week views. All-day events carry no time prefix.
func eventPill(event models.CalendarEvent, titleLimit int) dto.EventPill {
	pill := dto.EventPill{
		ID:            event.ID,
		Source:        event.Source,
		Label:         truncateTitle(event.Title, titleLimit),
		IsAllDay:      event.IsAllDay,
		Color:         event.Color,
		NavigationURL: event.NavigationURL,
	}
	if !event.IsAllDay {
		pill.TimeLabel = event.StartAt.Format("15:04")
	}
	return pill
}

func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if limit <= 0 || len(runes) <= limit {
		return title
	}
	return string(runes[:limit-1]) + "…"
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
