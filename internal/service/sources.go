package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

type congregationEventLister interface {
	ListInRange(ctx context.Context, congregationID *string, rng models.DateRange) ([]models.CongregationEvent, error)
}

type personalEntryLister interface {
	ListInRange(ctx context.Context, userID string, rng models.DateRange) ([]models.PersonalEntry, error)
}

type morningStudyLister interface {
	ListInRange(ctx context.Context, congregationID *string, userID string, rng models.DateRange) ([]models.MorningStudySession, error)
}

type homecellReader interface {
	FindActiveMembership(ctx context.Context, userID string) (*models.HomecellMembership, error)
	ListMeetings(ctx context.Context, homecellID string, rng models.DateRange) ([]models.HomecellMeeting, error)
}

type sourceFailureRecorder interface {
	RecordSourceFailure(kind models.SourceKind)
}

// eventSource normalizes one backing collaborator into CalendarEvents. Fetch
// never fails: a backing-store error degrades the source to an empty list so
// the remaining sources still render.
type eventSource interface {
	Kind() models.SourceKind
	Fetch(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent
}

// congregationEventSource covers both global and congregation-scoped events.
type congregationEventSource struct {
	repo    congregationEventLister
	logger  *zap.Logger
	metrics sourceFailureRecorder
}

func (s *congregationEventSource) Kind() models.SourceKind { return models.SourceCongregation }

func (s *congregationEventSource) Fetch(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent {
	rows, err := s.repo.ListInRange(ctx, scope.CongregationID, rng)
	if err != nil {
		degradeSource(s.logger, s.metrics, models.SourceCongregation, err)
		return nil
	}
	events := make([]models.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, normalizeCongregationEvent(row))
	}
	return events
}

func normalizeCongregationEvent(row models.CongregationEvent) models.CalendarEvent {
	kind := models.SourceCongregation
	color := models.ColorCongregation
	if row.CongregationID == nil {
		kind = models.SourceGlobal
		color = models.ColorGlobal
	}
	return models.CalendarEvent{
		ID:            row.ID,
		Source:        kind,
		Title:         fallbackTitle(row.Title, "Congregation Event"),
		StartAt:       row.StartAt,
		EndAt:         clampEnd(row.StartAt, row.EndAt),
		IsAllDay:      row.IsAllDay,
		Location:      row.Location,
		Color:         color,
		NavigationURL: stringPtr("/events/" + row.ID),
	}
}

// personalEntrySource exposes the member's own diary entries.
type personalEntrySource struct {
	repo    personalEntryLister
	logger  *zap.Logger
	metrics sourceFailureRecorder
}

func (s *personalEntrySource) Kind() models.SourceKind { return models.SourcePersonal }

func (s *personalEntrySource) Fetch(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent {
	rows, err := s.repo.ListInRange(ctx, scope.UserID, rng)
	if err != nil {
		degradeSource(s.logger, s.metrics, models.SourcePersonal, err)
		return nil
	}
	events := make([]models.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, normalizePersonalEntry(row))
	}
	return events
}

func normalizePersonalEntry(row models.PersonalEntry) models.CalendarEvent {
	color := models.ColorPersonal
	if row.Color != nil && *row.Color != "" {
		color = *row.Color
	}
	return models.CalendarEvent{
		ID:            row.ID,
		Source:        models.SourcePersonal,
		Title:         fallbackTitle(row.Title, "Personal Entry"),
		StartAt:       row.StartAt,
		EndAt:         clampEnd(row.StartAt, row.EndAt),
		IsAllDay:      row.IsAllDay,
		Location:      row.Location,
		Color:         color,
		NavigationURL: stringPtr("/diary/" + row.ID),
	}
}

// morningStudySource synthesizes fixed half-hour sessions with the member's
// completion state.
type morningStudySource struct {
	repo    morningStudyLister
	logger  *zap.Logger
	metrics sourceFailureRecorder
}

const morningStudyDuration = 30 * time.Minute

func (s *morningStudySource) Kind() models.SourceKind { return models.SourceMorningStudy }

func (s *morningStudySource) Fetch(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent {
	rows, err := s.repo.ListInRange(ctx, scope.CongregationID, scope.UserID, rng)
	if err != nil {
		degradeSource(s.logger, s.metrics, models.SourceMorningStudy, err)
		return nil
	}
	events := make([]models.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, normalizeMorningStudy(row))
	}
	return events
}

func normalizeMorningStudy(row models.MorningStudySession) models.CalendarEvent {
	title := "Morning Study"
	if row.Title != nil && strings.TrimSpace(*row.Title) != "" {
		title = strings.TrimSpace(*row.Title)
	}
	if row.Scripture != nil && strings.TrimSpace(*row.Scripture) != "" {
		title = fmt.Sprintf("%s · %s", title, strings.TrimSpace(*row.Scripture))
	}
	color := models.ColorMorningStudy
	if row.Completed {
		color = models.ColorMorningStudyDone
	}
	end := row.StartAt.Add(morningStudyDuration)
	completed := row.Completed
	return models.CalendarEvent{
		ID:            row.ID,
		Source:        models.SourceMorningStudy,
		Title:         title,
		StartAt:       row.StartAt,
		EndAt:         &end,
		Color:         color,
		NavigationURL: stringPtr("/morning-study/" + row.ID),
		Completed:     &completed,
	}
}

// homecellSource synthesizes two-hour meeting events for the member's active
// homecell. No membership means no events, not an error.
type homecellSource struct {
	repo    homecellReader
	logger  *zap.Logger
	metrics sourceFailureRecorder
}

const homecellMeetingDuration = 2 * time.Hour

// Meetings with no per-meeting time and no homecell default start at 19:00.
const homecellFallbackHour = 19

func (s *homecellSource) Kind() models.SourceKind { return models.SourceHomecell }

func (s *homecellSource) Fetch(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent {
	if scope.CongregationID == nil {
		return nil
	}
	membership, err := s.repo.FindActiveMembership(ctx, scope.UserID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			degradeSource(s.logger, s.metrics, models.SourceHomecell, err)
		}
		return nil
	}
	meetings, err := s.repo.ListMeetings(ctx, membership.HomecellID, rng)
	if err != nil {
		degradeSource(s.logger, s.metrics, models.SourceHomecell, err)
		return nil
	}
	events := make([]models.CalendarEvent, 0, len(meetings))
	for _, meeting := range meetings {
		events = append(events, normalizeHomecellMeeting(meeting, membership))
	}
	return events
}

func normalizeHomecellMeeting(meeting models.HomecellMeeting, membership *models.HomecellMembership) models.CalendarEvent {
	start := meetingStart(meeting, membership)
	end := start.Add(homecellMeetingDuration)
	title := membership.HomecellName + " Meeting"
	if meeting.Topic != nil && strings.TrimSpace(*meeting.Topic) != "" {
		title = fmt.Sprintf("%s · %s", title, strings.TrimSpace(*meeting.Topic))
	}
	return models.CalendarEvent{
		ID:            meeting.ID,
		Source:        models.SourceHomecell,
		Title:         title,
		StartAt:       start,
		EndAt:         &end,
		Location:      meeting.Location,
		Color:         models.ColorHomecell,
		NavigationURL: stringPtr(fmt.Sprintf("/homecells/%s/meetings/%s", meeting.HomecellID, meeting.ID)),
	}
}

func meetingStart(meeting models.HomecellMeeting, membership *models.HomecellMembership) time.Time {
	date := meeting.MeetingDate
	at := meeting.MeetingTime
	if at == nil {
		at = membership.DefaultMeetingTime
	}
	if at == nil {
		return time.Date(date.Year(), date.Month(), date.Day(), homecellFallbackHour, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), at.Hour(), at.Minute(), 0, 0, date.Location())
}

func degradeSource(logger *zap.Logger, metrics sourceFailureRecorder, kind models.SourceKind, err error) {
	if logger != nil {
		logger.Warn("calendar source degraded to empty",
			zap.String("source", string(kind)),
			zap.Error(err))
	}
	if metrics != nil {
		metrics.RecordSourceFailure(kind)
	}
}

// clampEnd drops inverted ranges back to the start instant so EndAt >= StartAt
// always holds past the adapter boundary.
func clampEnd(start time.Time, end *time.Time) *time.Time {
	if end == nil {
		return nil
	}
	if end.Before(start) {
		clamped := start
		return &clamped
	}
	return end
}

func fallbackTitle(title, fallback string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	return title
}

func stringPtr(s string) *string {
	return &s
}
