package handlers

import (
	"errors"

	"geoattend/internal/core/services"
	"geoattend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles runtime configuration endpoints (admin)
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetWorkSchedule handles reading the effective work schedule
// @Summary Get work schedule
// @Description Returns the effective schedule, defaults filled in for missing keys
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings/work-schedule [get]
func (h *SettingsHandler) GetWorkSchedule(c *fiber.Ctx) error {
	schedule, err := h.settingsService.GetWorkSchedule(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load work schedule")
	}
	return response.Success(c, "", fiber.Map{"work_schedule": schedule})
}

// UpdateWorkSchedule handles updating the work schedule
// @Summary Update work schedule
// @Description Store new start/end times and tolerance
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.WorkScheduleInput true "Schedule"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/work-schedule [put]
func (h *SettingsHandler) UpdateWorkSchedule(c *fiber.Ctx) error {
	var input services.WorkScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.settingsService.UpdateWorkSchedule(c.Context(), &input); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClockFormat):
			return response.BadRequest(c, "start_time and end_time must be HH:MM")
		case errors.Is(err, services.ErrInvalidTolerance):
			return response.BadRequest(c, "tolerance_minutes must be zero or greater")
		default:
			return response.InternalServerError(c, "Failed to update work schedule")
		}
	}

	schedule, err := h.settingsService.GetWorkSchedule(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load work schedule")
	}
	return response.Success(c, "Work schedule updated", fiber.Map{"work_schedule": schedule})
}

// GetOfficeLocation handles reading the office geofence
// @Summary Get office location
// @Description Returns the configured office coordinate and geofence radius
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings/office-location [get]
func (h *SettingsHandler) GetOfficeLocation(c *fiber.Ctx) error {
	location, err := h.settingsService.GetOfficeLocation(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load office location")
	}
	return response.Success(c, "", fiber.Map{"office_location": location})
}

// UpdateOfficeLocation handles updating the office geofence
// @Summary Update office location
// @Description Store new office coordinates and geofence radius
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.OfficeLocationInput true "Location"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/office-location [put]
func (h *SettingsHandler) UpdateOfficeLocation(c *fiber.Ctx) error {
	var input services.OfficeLocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.settingsService.UpdateOfficeLocation(c.Context(), &input); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCoordinates):
			return response.BadRequest(c, "latitude and longitude are out of range")
		case errors.Is(err, services.ErrInvalidRadius):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update office location")
		}
	}

	location, err := h.settingsService.GetOfficeLocation(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load office location")
	}
	return response.Success(c, "Office location updated", fiber.Map{"office_location": location})
}
