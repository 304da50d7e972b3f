package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
	"github.com/noah-isme/gereja-member-api/pkg/config"
)

// dayLayoutEngine converts start/end timestamps into a vertical offset and a
// clamped block height inside the containing hour row. Displayed time labels
// always reflect the true, unclamped values; only the rendered height is
// clamped.
type dayLayoutEngine struct {
	rowHeight int
	minHeight int
	maxHeight int
}

func newDayLayoutEngine(cfg config.CalendarConfig) dayLayoutEngine {
	engine := dayLayoutEngine{
		rowHeight: cfg.HourRowHeight,
		minHeight: cfg.MinBlockHeight,
		maxHeight: cfg.MaxBlockHeight,
	}
	if engine.rowHeight <= 0 {
		engine.rowHeight = 60
	}
	if engine.minHeight <= 0 {
		engine.minHeight = 40
	}
	if engine.maxHeight < engine.minHeight {
		engine.maxHeight = 300
	}
	return engine
}

// place returns the block's offset within its start hour row and its clamped
// rendered height.
func (e dayLayoutEngine) place(event models.CalendarEvent) (top, height int) {
	top = event.StartAt.Minute() * e.rowHeight / 60

	minutes := int(event.EffectiveEnd().Sub(event.StartAt).Minutes())
	height = minutes * e.rowHeight / 60
	if height < e.minHeight {
		height = e.minHeight
	}
	if height > e.maxHeight {
		height = e.maxHeight
	}
	return top, height
}

// buildDayView separates the day into an all-day band and a 24-row hour axis
// with positioned blocks. Concurrent events in one row stack without lane
// assignment. An entirely empty day is flagged explicitly so the client can
// offer creating an event instead of showing a blank grid.
func buildDayView(rng models.DateRange, idx *TimeBucketIndex, today time.Time, cfg config.CalendarConfig) *dto.DayViewModel {
	engine := newDayLayoutEngine(cfg)
	date := rng.Start

	allDay := idx.AllDayOn(date)
	band := make([]dto.EventPill, 0, len(allDay))
	for _, event := range allDay {
		band = append(band, eventPill(event, weekTitleLimit))
	}

	byHour := idx.HourBuckets(date)
	hours := make([]dto.HourRow, 0, 24)
	timed := 0
	for hour := 0; hour < 24; hour++ {
		row := dto.HourRow{Hour: hour, Label: fmt.Sprintf("%02d:00", hour)}
		for _, event := range byHour[hour] {
			row.Blocks = append(row.Blocks, buildTimedBlock(event, engine))
			timed++
		}
		hours = append(hours, row)
	}

	view := &dto.DayViewModel{
		Date:    date.Format(dateKeyLayout),
		IsToday: sameDate(date, today),
		AllDay:  band,
		Hours:   hours,
	}
	if len(band) == 0 && timed == 0 {
		view.IsEmpty = true
	}
	return view
}

func buildTimedBlock(event models.CalendarEvent, engine dayLayoutEngine) dto.TimedBlock {
	top, height := engine.place(event)
	return dto.TimedBlock{
		ID:            event.ID,
		Source:        event.Source,
		Title:         event.Title,
		StartLabel:    event.StartAt.Format("15:04"),
		EndLabel:      event.EffectiveEnd().Format("15:04"),
		TopOffset:     top,
		Height:        height,
		Color:         event.Color,
		Location:      event.Location,
		NavigationURL: event.NavigationURL,
		Completed:     event.Completed,
	}
}
