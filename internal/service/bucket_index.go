package service

import (
	"sort"
	"time"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

const dateKeyLayout = "2006-01-02"

// mergeEvents concatenates per-source lists in adapter order. No dedupe and
// no sort here: duplicates across sources are legitimate, and ordering is the
// index's job.
func mergeEvents(lists ...[]models.CalendarEvent) []models.CalendarEvent {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	merged := make([]models.CalendarEvent, 0, total)
	for _, list := range lists {
		merged = append(merged, list...)
	}
	return merged
}

// TimeBucketIndex groups merged events by calendar date, each bucket sorted
// ascending by start time with ties kept in adapter insertion order. Dates
// with no events are absent, keeping the structure sparse. The index is built
// once per request and never mutated afterwards.
type TimeBucketIndex struct {
	byDate map[string][]models.CalendarEvent
}

// buildTimeBucketIndex indexes the merged event list.
func buildTimeBucketIndex(events []models.CalendarEvent) *TimeBucketIndex {
	byDate := make(map[string][]models.CalendarEvent)
	for _, event := range events {
		key := event.StartAt.Format(dateKeyLayout)
		byDate[key] = append(byDate[key], event)
	}
	for key := range byDate {
		bucket := byDate[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartAt.Before(bucket[j].StartAt)
		})
		byDate[key] = bucket
	}
	return &TimeBucketIndex{byDate: byDate}
}

// EventsOn returns the ordered bucket for the calendar date of t, or nil.
func (ix *TimeBucketIndex) EventsOn(t time.Time) []models.CalendarEvent {
	return ix.byDate[t.Format(dateKeyLayout)]
}

// Len reports the total number of indexed events.
func (ix *TimeBucketIndex) Len() int {
	total := 0
	for _, bucket := range ix.byDate {
		total += len(bucket)
	}
	return total
}

// HourBuckets splits the timed events of one date by the hour component of
// their start time. All-day events are excluded; they belong to the day
// view's separate band.
func (ix *TimeBucketIndex) HourBuckets(t time.Time) map[int][]models.CalendarEvent {
	byHour := make(map[int][]models.CalendarEvent)
	for _, event := range ix.EventsOn(t) {
		if event.IsAllDay {
			continue
		}
		hour := event.StartAt.Hour()
		byHour[hour] = append(byHour[hour], event)
	}
	return byHour
}

// AllDayOn returns the all-day events of one date in bucket order.
func (ix *TimeBucketIndex) AllDayOn(t time.Time) []models.CalendarEvent {
	var allDay []models.CalendarEvent
	for _, event := range ix.EventsOn(t) {
		if event.IsAllDay {
			allDay = append(allDay, event)
		}
	}
	return allDay
}
