package handlers

import (
	"errors"

	"geoattend/internal/core/domain"
	"geoattend/internal/core/services"
	"geoattend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles attendance report exports (admin)
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate handles report generation
// @Summary Generate attendance report
// @Description Export attendance for a date range as an Excel workbook or JSON
// @Tags Reports
// @Accept json
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param body body services.ReportInput true "Report parameters"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var input services.ReportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.StartDate == "" || input.EndDate == "" {
		return response.BadRequest(c, "start_date and end_date are required")
	}

	rows, err := h.reportService.Generate(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to generate report")
	}

	if input.Format == "json" {
		return response.Success(c, "", services.BuildOutput(&input, rows))
	}

	buf, err := h.reportService.RenderExcel(rows)
	if err != nil {
		return response.InternalServerError(c, "Failed to render report")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+services.Filename(&input)+`"`)
	return c.Send(buf.Bytes())
}
