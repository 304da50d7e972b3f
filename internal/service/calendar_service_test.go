package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
)

type mockCongregationUpcoming struct {
	rows []models.CongregationEvent
	err  error
}

func (m *mockCongregationUpcoming) ListUpcoming(ctx context.Context, congregationID *string, now time.Time, limit int) ([]models.CongregationEvent, error) {
	return m.rows, m.err
}

type mockPersonalUpcoming struct {
	rows []models.PersonalEntry
	err  error
}

func (m *mockPersonalUpcoming) ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]models.PersonalEntry, error) {
	return m.rows, m.err
}

func newTestCalendarService(t *testing.T, params CalendarServiceParams) *CalendarService {
	t.Helper()
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Metrics == nil {
		params.Metrics = NewMetricsService()
	}
	if params.Config.MonthCellCap == 0 {
		params.Config = calendarTestConfig()
	}
	svc := NewCalendarService(params)
	fixed := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return fixed }
	svc.resolver = fixedResolver(fixed)
	return svc
}

func TestCalendarServiceResolveView(t *testing.T) {
	svc := newTestCalendarService(t, CalendarServiceParams{})

	resolved := svc.ResolveView(dto.ViewRequest{View: dto.ViewMonth, Year: 2025, Month: 3})

	assert.Equal(t, dto.ViewMonth, resolved.View)
	assert.Equal(t, "2025-03-01", resolved.StartDate)
	assert.Equal(t, "2025-03-31", resolved.EndDate)
	assert.Equal(t, 2, resolved.Navigation.Previous.Month)
	assert.Equal(t, 4, resolved.Navigation.Next.Month)
}

func TestCalendarServiceCollectRangeFixedOrder(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	congregation := "cong-1"
	meetingAt := time.Date(2000, time.January, 1, 9, 0, 0, 0, time.Local)

	svc := newTestCalendarService(t, CalendarServiceParams{
		Congregation: &mockEventLister{rows: []models.CongregationEvent{
			{ID: "evt", Title: "Service", StartAt: at, CongregationID: &congregation},
		}},
		Personal: &mockPersonalLister{rows: []models.PersonalEntry{
			{ID: "diary", Title: "Reading", StartAt: at},
		}},
		MorningStudy: &mockStudyLister{rows: []models.MorningStudySession{
			{ID: "study", StartAt: at},
		}},
		Homecells: &mockHomecellReader{
			membership: &models.HomecellMembership{HomecellID: "hc-1", HomecellName: "North Cell"},
			meetings: []models.HomecellMeeting{
				{ID: "meeting", HomecellID: "hc-1", MeetingDate: at, MeetingTime: &meetingAt},
			},
		},
	})

	merged := svc.CollectRange(context.Background(), testRange(), memberScope())

	// Equal start times, so merged order is the fixed adapter order.
	require.Len(t, merged, 4)
	assert.Equal(t, "evt", merged[0].ID)
	assert.Equal(t, "diary", merged[1].ID)
	assert.Equal(t, "study", merged[2].ID)
	assert.Equal(t, "meeting", merged[3].ID)
}

func TestCalendarServiceCollectRangeDegradedSourceStillMerges(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)

	svc := newTestCalendarService(t, CalendarServiceParams{
		Congregation: &mockEventLister{err: errors.New("db down")},
		Personal: &mockPersonalLister{rows: []models.PersonalEntry{
			{ID: "diary", Title: "Reading", StartAt: at},
		}},
	})

	merged := svc.CollectRange(context.Background(), testRange(), memberScope())

	require.Len(t, merged, 1)
	assert.Equal(t, "diary", merged[0].ID)
}

func TestCalendarServiceScopeWithoutCongregation(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	eventRepo := &mockEventLister{rows: []models.CongregationEvent{
		{ID: "global", Title: "National Convention", StartAt: at},
	}}
	homecellRepo := &mockHomecellReader{}

	svc := newTestCalendarService(t, CalendarServiceParams{
		Congregation: eventRepo,
		Personal: &mockPersonalLister{rows: []models.PersonalEntry{
			{ID: "diary", Title: "Reading", StartAt: at},
		}},
		Homecells: homecellRepo,
	})

	merged := svc.CollectRange(context.Background(), testRange(), models.Scope{UserID: "user-1"})

	require.Len(t, merged, 2)
	assert.Equal(t, models.SourceGlobal, merged[0].Source)
	assert.Equal(t, models.SourcePersonal, merged[1].Source)
	assert.True(t, eventRepo.called)
	assert.Nil(t, eventRepo.lastCongregationID)
	assert.False(t, homecellRepo.membershipCalled)
}

func TestCalendarServiceRenderMonthView(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	svc := newTestCalendarService(t, CalendarServiceParams{
		Congregation: &mockEventLister{rows: []models.CongregationEvent{
			{ID: "evt", Title: "Service", StartAt: at},
		}},
	})

	view, err := svc.RenderView(context.Background(), dto.ViewRequest{View: dto.ViewMonth, Year: 2025, Month: 3}, memberScope())

	require.NoError(t, err)
	assert.Equal(t, dto.ViewMonth, view.View)
	require.NotNil(t, view.Month)
	assert.Nil(t, view.Week)
	assert.Nil(t, view.Day)
	assert.Equal(t, "2025-03-01", view.StartDate)
	assert.Equal(t, "2025-03-31", view.EndDate)
}

func TestCalendarServiceRenderWeekAndDayViews(t *testing.T) {
	svc := newTestCalendarService(t, CalendarServiceParams{})

	week, err := svc.RenderView(context.Background(), dto.ViewRequest{View: dto.ViewWeek, Year: 2025, Month: 3, Day: 12}, memberScope())
	require.NoError(t, err)
	require.NotNil(t, week.Week)
	assert.Nil(t, week.Month)

	day, err := svc.RenderView(context.Background(), dto.ViewRequest{View: dto.ViewDay, Year: 2025, Month: 3, Day: 12}, memberScope())
	require.NoError(t, err)
	require.NotNil(t, day.Day)
	assert.True(t, day.Day.IsToday)
}

func TestCalendarServiceGetUpcomingSortsAcrossSources(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
	svc := newTestCalendarService(t, CalendarServiceParams{
		CongregationUpcoming: &mockCongregationUpcoming{rows: []models.CongregationEvent{
			{ID: "evt-later", Title: "Service", StartAt: now.Add(48 * time.Hour)},
			{ID: "evt-soon", Title: "Rehearsal", StartAt: now.Add(2 * time.Hour)},
		}},
		PersonalUpcoming: &mockPersonalUpcoming{rows: []models.PersonalEntry{
			{ID: "diary-mid", Title: "Dentist", StartAt: now.Add(24 * time.Hour)},
		}},
	})

	upcoming, err := svc.GetUpcoming(context.Background(), memberScope(), 5)

	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "evt-soon", upcoming[0].ID)
	assert.Equal(t, "diary-mid", upcoming[1].ID)
	assert.Equal(t, "evt-later", upcoming[2].ID)
}

func TestCalendarServiceGetUpcomingCapsResult(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
	svc := newTestCalendarService(t, CalendarServiceParams{
		CongregationUpcoming: &mockCongregationUpcoming{rows: []models.CongregationEvent{
			{ID: "e1", Title: "A", StartAt: now.Add(time.Hour)},
			{ID: "e2", Title: "B", StartAt: now.Add(2 * time.Hour)},
			{ID: "e3", Title: "C", StartAt: now.Add(3 * time.Hour)},
		}},
	})

	upcoming, err := svc.GetUpcoming(context.Background(), memberScope(), 2)

	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "e1", upcoming[0].ID)
	assert.Equal(t, "e2", upcoming[1].ID)
}

func TestCalendarServiceGetUpcomingDegradesFailedSource(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
	svc := newTestCalendarService(t, CalendarServiceParams{
		CongregationUpcoming: &mockCongregationUpcoming{err: errors.New("db down")},
		PersonalUpcoming: &mockPersonalUpcoming{rows: []models.PersonalEntry{
			{ID: "diary", Title: "Dentist", StartAt: now.Add(time.Hour)},
		}},
	})

	upcoming, err := svc.GetUpcoming(context.Background(), memberScope(), 5)

	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "diary", upcoming[0].ID)
}

func dbQuerySampleCount(t *testing.T, metrics *MetricsService) int {
	t.Helper()
	families, err := metrics.registry.Gather()
	require.NoError(t, err)
	samples := 0
	for _, family := range families {
		if family.GetName() != "db_query_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			samples += int(metric.GetHistogram().GetSampleCount())
		}
	}
	return samples
}

func TestCalendarServiceCollectRangeObservesQueryTimings(t *testing.T) {
	metrics := NewMetricsService()
	svc := newTestCalendarService(t, CalendarServiceParams{
		Congregation: &mockEventLister{},
		Personal:     &mockPersonalLister{},
		MorningStudy: &mockStudyLister{},
		Homecells:    &mockHomecellReader{membershipErr: sql.ErrNoRows},
		Metrics:      metrics,
	})

	svc.CollectRange(context.Background(), testRange(), memberScope())

	assert.Equal(t, 4, dbQuerySampleCount(t, metrics))
}

func TestCalendarServiceGetUpcomingObservesQueryTimings(t *testing.T) {
	metrics := NewMetricsService()
	svc := newTestCalendarService(t, CalendarServiceParams{
		CongregationUpcoming: &mockCongregationUpcoming{},
		PersonalUpcoming:     &mockPersonalUpcoming{},
		Metrics:              metrics,
	})

	_, err := svc.GetUpcoming(context.Background(), memberScope(), 5)

	require.NoError(t, err)
	assert.Equal(t, 2, dbQuerySampleCount(t, metrics))
}

func TestCalendarServiceViewCacheKeyIsUserScoped(t *testing.T) {
	svc := newTestCalendarService(t, CalendarServiceParams{})
	req := dto.ViewRequest{View: dto.ViewMonth, Year: 2025, Month: 3, Day: 1}

	keyA := svc.viewCacheKey(req, models.Scope{UserID: "user-1"})
	keyB := svc.viewCacheKey(req, models.Scope{UserID: "user-2"})

	assert.Equal(t, "cal:view:user-1:month:2025-03-01", keyA)
	assert.NotEqual(t, keyA, keyB)
}
