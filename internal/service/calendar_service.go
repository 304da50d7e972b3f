package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
	"github.com/noah-isme/gereja-member-api/pkg/config"
)

type congregationUpcomingLister interface {
	ListUpcoming(ctx context.Context, congregationID *string, now time.Time, limit int) ([]models.CongregationEvent, error)
}

type personalUpcomingLister interface {
	ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]models.PersonalEntry, error)
}

// CalendarService aggregates the four event sources into the unified month,
// week and day views. Everything it produces is request-scoped: the merged
// collection is a pure function of (date range, scope) and no state survives
// between renders.
type CalendarService struct {
	resolver *DateRangeResolver
	sources  []eventSource

	congregationUpcoming congregationUpcomingLister
	personalUpcoming     personalUpcomingLister

	cache   *CacheService
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time
	cfg     config.CalendarConfig
}

// CalendarServiceParams groups constructor dependencies.
type CalendarServiceParams struct {
	Congregation congregationEventLister
	Personal     personalEntryLister
	MorningStudy morningStudyLister
	Homecells    homecellReader

	CongregationUpcoming congregationUpcomingLister
	PersonalUpcoming     personalUpcomingLister

	Cache   *CacheService
	Logger  *zap.Logger
	Metrics *MetricsService
	Config  config.CalendarConfig
}

// NewCalendarService constructs the service. The adapter order is fixed
// (congregation, personal, morning study, homecell) so bucket tie-breaking
// stays deterministic across requests.
func NewCalendarService(params CalendarServiceParams) *CalendarService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &CalendarService{
		resolver:             NewDateRangeResolver(),
		congregationUpcoming: params.CongregationUpcoming,
		personalUpcoming:     params.PersonalUpcoming,
		cache:                params.Cache,
		logger:               logger,
		metrics:              params.Metrics,
		now:                  time.Now,
		cfg:                  params.Config,
	}
	if params.Congregation != nil {
		svc.sources = append(svc.sources, &congregationEventSource{repo: params.Congregation, logger: logger, metrics: params.Metrics})
	}
	if params.Personal != nil {
		svc.sources = append(svc.sources, &personalEntrySource{repo: params.Personal, logger: logger, metrics: params.Metrics})
	}
	if params.MorningStudy != nil {
		svc.sources = append(svc.sources, &morningStudySource{repo: params.MorningStudy, logger: logger, metrics: params.Metrics})
	}
	if params.Homecells != nil {
		svc.sources = append(svc.sources, &homecellSource{repo: params.Homecells, logger: logger, metrics: params.Metrics})
	}
	return svc
}

// ResolveView clamps the request and returns its date range plus navigation.
func (s *CalendarService) ResolveView(req dto.ViewRequest) dto.RangeResponse {
	req = s.resolver.Normalize(req)
	resolved := s.resolver.Resolve(req)
	return dto.RangeResponse{
		View:       req.View,
		StartDate:  resolved.Range.Start.Format(dateKeyLayout),
		EndDate:    resolved.Range.End.Format(dateKeyLayout),
		Navigation: resolved.Navigation,
	}
}

// RenderView produces the month, week or day view model for the request. A
// failing source degrades to an empty contribution; the render itself does
// not fail.
func (s *CalendarService) RenderView(ctx context.Context, req dto.ViewRequest, scope models.Scope) (*dto.CalendarViewResponse, error) {
	req = s.resolver.Normalize(req)
	resolved := s.resolver.Resolve(req)

	cacheKey := s.viewCacheKey(req, scope)
	if s.cache != nil {
		var cached dto.CalendarViewResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	merged := s.CollectRange(ctx, resolved.Range, scope)
	idx := buildTimeBucketIndex(merged)
	today := s.today()

	response := &dto.CalendarViewResponse{
		View:       req.View,
		StartDate:  resolved.Range.Start.Format(dateKeyLayout),
		EndDate:    resolved.Range.End.Format(dateKeyLayout),
		Navigation: resolved.Navigation,
	}
	switch req.View {
	case dto.ViewWeek:
		response.Week = buildWeekView(resolved.Range, idx, today, s.cfg)
	case dto.ViewDay:
		response.Day = buildDayView(resolved.Range, idx, today, s.cfg)
	default:
		response.Month = buildMonthView(resolved.Range, idx, today, s.cfg)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("calendar view cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return response, nil
}

// CollectRange fetches and merges all sources for the range. Fetches run
// concurrently; results are merged in fixed adapter order so the output is
// deterministic regardless of completion order.
func (s *CalendarService) CollectRange(ctx context.Context, rng models.DateRange, scope models.Scope) []models.CalendarEvent {
	results := make([][]models.CalendarEvent, len(s.sources))
	var wg sync.WaitGroup
	for i, source := range s.sources {
		wg.Add(1)
		go func(i int, source eventSource) {
			defer wg.Done()
			started := time.Now()
			results[i] = source.Fetch(ctx, rng, scope)
			s.metrics.ObserveDBQuery("source_"+string(source.Kind()), time.Since(started))
		}(i, source)
	}
	wg.Wait()
	return mergeEvents(results...)
}

// GetUpcoming returns the next events from the congregation/global and
// personal sources only, anchored to the current instant and independent of
// any selected view.
func (s *CalendarService) GetUpcoming(ctx context.Context, scope models.Scope, limit int) ([]models.CalendarEvent, error) {
	if limit <= 0 {
		limit = s.cfg.UpcomingLimit
	}
	if limit <= 0 {
		limit = 5
	}
	now := s.now()

	upcoming := make([]models.CalendarEvent, 0, limit*2)
	if s.congregationUpcoming != nil {
		started := time.Now()
		rows, err := s.congregationUpcoming.ListUpcoming(ctx, scope.CongregationID, now, limit)
		s.metrics.ObserveDBQuery("upcoming_congregation", time.Since(started))
		if err != nil {
			degradeSource(s.logger, s.metrics, models.SourceCongregation, err)
		}
		for _, row := range rows {
			upcoming = append(upcoming, normalizeCongregationEvent(row))
		}
	}
	if s.personalUpcoming != nil {
		started := time.Now()
		rows, err := s.personalUpcoming.ListUpcoming(ctx, scope.UserID, now, limit)
		s.metrics.ObserveDBQuery("upcoming_personal", time.Since(started))
		if err != nil {
			degradeSource(s.logger, s.metrics, models.SourcePersonal, err)
		}
		for _, row := range rows {
			upcoming = append(upcoming, normalizePersonalEntry(row))
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartAt.Before(upcoming[j].StartAt)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (s *CalendarService) viewCacheKey(req dto.ViewRequest, scope models.Scope) string {
	return fmt.Sprintf("cal:view:%s:%s:%04d-%02d-%02d", scope.UserID, req.View, req.Year, req.Month, req.Day)
}

func (s *CalendarService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
