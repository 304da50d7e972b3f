package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gereja-member-api/internal/models"
	"github.com/noah-isme/gereja-member-api/internal/service"
	appErrors "github.com/noah-isme/gereja-member-api/pkg/errors"
	"github.com/noah-isme/gereja-member-api/pkg/response"
)

type calendarExporter interface {
	ExportMonth(ctx context.Context, year, month int, format service.ExportFormat, scope models.Scope) (*service.ExportResult, error)
}

// ExportHandler exposes the calendar export endpoint.
type ExportHandler struct {
	service calendarExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(service calendarExporter) *ExportHandler {
	return &ExportHandler{service: service}
}

// Month godoc
// @Summary Export one month of calendar events as CSV or PDF
// @Tags Calendar
// @Produce octet-stream
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param format query string true "Export format (csv|pdf)"
// @Success 200 {file} binary
// @Router /calendar/export [get]
func (h *ExportHandler) Month(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	year := intQuery(c, "year", 0)
	month := intQuery(c, "month", 0)
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.ExportMonth(c.Request.Context(), year, month, format, claims.CalendarScope())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
