package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/middleware"
	"github.com/noah-isme/gereja-member-api/internal/models"
)

type calendarServiceMock struct {
	viewResp     *dto.CalendarViewResponse
	viewErr      error
	upcomingResp []models.CalendarEvent
	upcomingErr  error
	lastRequest  dto.ViewRequest
	lastScope    models.Scope
	lastLimit    int
	viewCalled   bool
	rangeCalled  bool
}

func (m *calendarServiceMock) ResolveView(req dto.ViewRequest) dto.RangeResponse {
	m.rangeCalled = true
	m.lastRequest = req
	return dto.RangeResponse{View: dto.ViewMonth, StartDate: "2025-03-01", EndDate: "2025-03-31"}
}

func (m *calendarServiceMock) RenderView(ctx context.Context, req dto.ViewRequest, scope models.Scope) (*dto.CalendarViewResponse, error) {
	m.viewCalled = true
	m.lastRequest = req
	m.lastScope = scope
	return m.viewResp, m.viewErr
}

func (m *calendarServiceMock) GetUpcoming(ctx context.Context, scope models.Scope, limit int) ([]models.CalendarEvent, error) {
	m.lastScope = scope
	m.lastLimit = limit
	return m.upcomingResp, m.upcomingErr
}

func memberClaims() *models.JWTClaims {
	congregation := "cong-1"
	return &models.JWTClaims{UserID: "user-1", Email: "maria@example.org", Role: models.RoleMember, CongregationID: &congregation}
}

func calendarTestContext(t *testing.T, target string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

func TestCalendarHandlerView(t *testing.T) {
	mockSvc := &calendarServiceMock{
		viewResp: &dto.CalendarViewResponse{View: dto.ViewMonth, Month: &dto.MonthViewModel{Year: 2025, Month: 3}},
	}
	handler := NewCalendarHandler(mockSvc)

	c, w := calendarTestContext(t, "/calendar?view=month&year=2025&month=3", memberClaims())
	handler.View(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.viewCalled)
	assert.Equal(t, dto.ViewMonth, mockSvc.lastRequest.View)
	assert.Equal(t, 2025, mockSvc.lastRequest.Year)
	assert.Equal(t, 3, mockSvc.lastRequest.Month)
	assert.Equal(t, "user-1", mockSvc.lastScope.UserID)
	require.NotNil(t, mockSvc.lastScope.CongregationID)
	assert.Equal(t, "cong-1", *mockSvc.lastScope.CongregationID)
}

func TestCalendarHandlerViewUnauthorized(t *testing.T) {
	mockSvc := &calendarServiceMock{}
	handler := NewCalendarHandler(mockSvc)

	c, w := calendarTestContext(t, "/calendar", nil)
	handler.View(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mockSvc.viewCalled)
}

func TestCalendarHandlerViewMalformedQueryPassesZero(t *testing.T) {
	mockSvc := &calendarServiceMock{viewResp: &dto.CalendarViewResponse{View: dto.ViewMonth}}
	handler := NewCalendarHandler(mockSvc)

	c, w := calendarTestContext(t, "/calendar?year=abc&month=xyz", memberClaims())
	handler.View(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, mockSvc.lastRequest.Year)
	assert.Equal(t, 0, mockSvc.lastRequest.Month)
}

func TestCalendarHandlerRange(t *testing.T) {
	mockSvc := &calendarServiceMock{}
	handler := NewCalendarHandler(mockSvc)

	c, w := calendarTestContext(t, "/calendar/range?view=month&year=2025&month=3", memberClaims())
	handler.Range(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.rangeCalled)

	var envelope struct {
		Data dto.RangeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "2025-03-01", envelope.Data.StartDate)
	assert.Equal(t, "2025-03-31", envelope.Data.EndDate)
}

func TestCalendarHandlerUpcoming(t *testing.T) {
	mockSvc := &calendarServiceMock{
		upcomingResp: []models.CalendarEvent{
			{ID: "evt-1", Source: models.SourceCongregation, Title: "Service", StartAt: time.Now().Add(time.Hour)},
		},
	}
	handler := NewCalendarHandler(mockSvc)

	c, w := calendarTestContext(t, "/calendar/upcoming?limit=3", memberClaims())
	handler.Upcoming(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, mockSvc.lastLimit)

	var envelope struct {
		Data []models.CalendarEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "evt-1", envelope.Data[0].ID)
}

func TestCalendarHandlerUpcomingUnauthorized(t *testing.T) {
	handler := NewCalendarHandler(&calendarServiceMock{})

	c, w := calendarTestContext(t, "/calendar/upcoming", nil)
	handler.Upcoming(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
