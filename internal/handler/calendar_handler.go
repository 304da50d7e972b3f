package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gereja-member-api/internal/dto"
	"github.com/noah-isme/gereja-member-api/internal/models"
	appErrors "github.com/noah-isme/gereja-member-api/pkg/errors"
	"github.com/noah-isme/gereja-member-api/pkg/response"
)

type calendarViewService interface {
	ResolveView(req dto.ViewRequest) dto.RangeResponse
	RenderView(ctx context.Context, req dto.ViewRequest, scope models.Scope) (*dto.CalendarViewResponse, error)
	GetUpcoming(ctx context.Context, scope models.Scope, limit int) ([]models.CalendarEvent, error)
}

// CalendarHandler exposes the unified calendar endpoints.
type CalendarHandler struct {
	service calendarViewService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarViewService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// View godoc
// @Summary Render the unified calendar view
// @Tags Calendar
// @Produce json
// @Param view query string false "View type (month|week|day)"
// @Param year query int false "Anchor year"
// @Param month query int false "Anchor month (1-12)"
// @Param day query int false "Anchor day"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) View(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	view, err := h.service.RenderView(c.Request.Context(), viewRequestFromQuery(c), claims.CalendarScope())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Range godoc
// @Summary Resolve a view's date range and navigation without rendering
// @Tags Calendar
// @Produce json
// @Param view query string false "View type (month|week|day)"
// @Param year query int false "Anchor year"
// @Param month query int false "Anchor month (1-12)"
// @Param day query int false "Anchor day"
// @Success 200 {object} response.Envelope
// @Router /calendar/range [get]
func (h *CalendarHandler) Range(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	resolved := h.service.ResolveView(viewRequestFromQuery(c))
	response.JSON(c, http.StatusOK, resolved, nil)
}

// Upcoming godoc
// @Summary List the next upcoming events for the member
// @Tags Calendar
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} response.Envelope
// @Router /calendar/upcoming [get]
func (h *CalendarHandler) Upcoming(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	limit := intQuery(c, "limit", 0)
	events, err := h.service.GetUpcoming(c.Request.Context(), claims.CalendarScope(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// viewRequestFromQuery reads the view parameters. Missing or malformed values
// pass through as zero and are clamped by the resolver.
func viewRequestFromQuery(c *gin.Context) dto.ViewRequest {
	return dto.ViewRequest{
		View:  dto.ViewType(c.Query("view")),
		Year:  intQuery(c, "year", 0),
		Month: intQuery(c, "month", 0),
		Day:   intQuery(c, "day", 0),
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
