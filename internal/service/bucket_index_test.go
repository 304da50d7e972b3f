package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

func eventAt(id string, start time.Time, source models.SourceKind) models.CalendarEvent {
	return models.CalendarEvent{ID: id, Source: source, Title: id, StartAt: start}
}

func TestMergeEventsKeepsAdapterOrder(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	a := []models.CalendarEvent{eventAt("a1", at, models.SourceCongregation), eventAt("a2", at, models.SourceCongregation)}
	b := []models.CalendarEvent{eventAt("b1", at, models.SourcePersonal)}

	merged := mergeEvents(a, nil, b)

	require.Len(t, merged, 3)
	assert.Equal(t, "a1", merged[0].ID)
	assert.Equal(t, "a2", merged[1].ID)
	assert.Equal(t, "b1", merged[2].ID)
}

func TestBucketIndexPartitionsByDate(t *testing.T) {
	events := []models.CalendarEvent{
		eventAt("e1", time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local), models.SourceCongregation),
		eventAt("e2", time.Date(2025, time.March, 10, 18, 0, 0, 0, time.Local), models.SourcePersonal),
		eventAt("e3", time.Date(2025, time.March, 11, 6, 0, 0, 0, time.Local), models.SourceMorningStudy),
	}

	idx := buildTimeBucketIndex(events)

	assert.Equal(t, 3, idx.Len())
	assert.Len(t, idx.EventsOn(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)), 2)
	assert.Len(t, idx.EventsOn(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.Local)), 1)
	assert.Nil(t, idx.EventsOn(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)))
}

func TestBucketIndexSortsWithinDate(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	events := []models.CalendarEvent{
		eventAt("late", day.Add(20*time.Hour), models.SourcePersonal),
		eventAt("early", day.Add(6*time.Hour), models.SourceMorningStudy),
		eventAt("mid", day.Add(12*time.Hour), models.SourceCongregation),
	}

	bucket := buildTimeBucketIndex(events).EventsOn(day)

	require.Len(t, bucket, 3)
	assert.Equal(t, "early", bucket[0].ID)
	assert.Equal(t, "mid", bucket[1].ID)
	assert.Equal(t, "late", bucket[2].ID)
}

func TestBucketIndexTiesKeepInsertionOrder(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	events := []models.CalendarEvent{
		eventAt("first", at, models.SourceCongregation),
		eventAt("second", at, models.SourcePersonal),
		eventAt("third", at, models.SourceHomecell),
	}

	bucket := buildTimeBucketIndex(events).EventsOn(at)

	require.Len(t, bucket, 3)
	assert.Equal(t, "first", bucket[0].ID)
	assert.Equal(t, "second", bucket[1].ID)
	assert.Equal(t, "third", bucket[2].ID)
}

func TestBucketIndexHourBucketsExcludeAllDay(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	allDay := eventAt("retreat", day, models.SourceCongregation)
	allDay.IsAllDay = true
	events := []models.CalendarEvent{
		allDay,
		eventAt("study", day.Add(6*time.Hour), models.SourceMorningStudy),
		eventAt("standup", day.Add(6*time.Hour+30*time.Minute), models.SourcePersonal),
		eventAt("dinner", day.Add(19*time.Hour), models.SourceHomecell),
	}

	idx := buildTimeBucketIndex(events)
	byHour := idx.HourBuckets(day)

	require.Len(t, byHour[6], 2)
	assert.Equal(t, "study", byHour[6][0].ID)
	assert.Equal(t, "standup", byHour[6][1].ID)
	require.Len(t, byHour[19], 1)
	assert.Empty(t, byHour[0])

	band := idx.AllDayOn(day)
	require.Len(t, band, 1)
	assert.Equal(t, "retreat", band[0].ID)
}
