package service

import (
	"time"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
	"github.com/noah-isme/gereja-member-api/pkg/config"
)

// Week cards are wider than month cells, so titles get more room.
const weekTitleLimit = 28

// buildWeekView renders seven day cards spanning the resolved Monday..Sunday
// range. The Sunday card occupies a wider layout slot and takes a higher cap.
func buildWeekView(rng models.DateRange, idx *TimeBucketIndex, today time.Time, cfg config.CalendarConfig) *dto.WeekViewModel {
	weekdayCap := cfg.WeekCardCap
	if weekdayCap <= 0 {
		weekdayCap = 4
	}
	sundayCap := cfg.WeekSundayCardCap
	if sundayCap <= 0 {
		sundayCap = 6
	}

	days := make([]dto.WeekDayCard, 0, 7)
	for offset := 0; offset < 7; offset++ {
		date := rng.Start.AddDate(0, 0, offset)
		limit := weekdayCap
		if offset == 6 {
			limit = sundayCap
		}
		days = append(days, buildWeekCard(date, idx, today, limit))
	}

	return &dto.WeekViewModel{
		StartDate: rng.Start.Format(dateKeyLayout),
		EndDate:   rng.End.Format(dateKeyLayout),
		Days:      days,
	}
}

func buildWeekCard(date time.Time, idx *TimeBucketIndex, today time.Time, limit int) dto.WeekDayCard {
	bucket := idx.EventsOn(date)
	card := dto.WeekDayCard{
		Date:    date.Format(dateKeyLayout),
		Weekday: date.Weekday().String(),
		Day:     date.Day(),
		IsToday: sameDate(date, today),
	}
	for i, event := range bucket {
		if i >= limit {
			card.MoreCount = len(bucket) - limit
			break
		}
		pill := eventPill(event, weekTitleLimit)
		if !event.IsAllDay {
			pill.TimeLabel = event.StartAt.Format("15:04") + " – " + event.EffectiveEnd().Format("15:04")
		}
		card.Events = append(card.Events, pill)
	}
	return card
}
