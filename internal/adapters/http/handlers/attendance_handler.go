package handlers

import (
	"errors"

	"geoattend/internal/core/domain"
	"geoattend/internal/core/services"
	"geoattend/internal/pkg/pagination"
	"geoattend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CoordinatesRequest represents a coordinate payload
type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckIn handles employee check-in
// @Summary Check in
// @Description Register the start of a work day at the current location
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CoordinatesRequest true "Current coordinates"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req CoordinatesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)
	userName, _ := c.Locals("name").(string)

	record, err := h.attendanceService.CheckIn(c.Context(), &services.CheckInInput{
		UserID:    userID,
		UserName:  userName,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		// Conflict and policy rejections are client errors with a specific
		// message, same status as malformed input
		switch {
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
			return response.BadRequest(c, "You have already checked in today")
		case errors.Is(err, domain.ErrDayAlreadyComplete):
			return response.BadRequest(c, "You have already completed attendance today")
		case errors.Is(err, domain.ErrOutsideWorkHours):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrOutsideGeofence):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to check in")
		}
	}

	return response.Created(c, "Check-in successful", fiber.Map{"attendance": record})
}

// CheckOut handles employee check-out
// @Summary Check out
// @Description Complete a pending attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance record ID"
// @Param body body CoordinatesRequest true "Current coordinates"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /attendance/checkout/{id} [put]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	recordID, err := c.ParamsInt("id")
	if err != nil || recordID < 1 {
		return response.BadRequest(c, "Invalid attendance record ID")
	}

	var req CoordinatesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.attendanceService.CheckOut(c.Context(), uint(recordID), &services.CheckOutInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return response.NotFound(c, "Attendance record not found")
		case errors.Is(err, domain.ErrAlreadyCheckedOut):
			return response.BadRequest(c, "This record is already checked out")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to check out")
		}
	}

	return response.Success(c, "Check-out successful", fiber.Map{"attendance": record})
}

// History handles a user's attendance history
// @Summary Attendance history
// @Description List a user's attendance records, newest first
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param limit query int false "Page size (default 30, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} response.Response
// @Router /attendance/user/{user_id} [get]
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	params := pagination.GetParams(c)

	records, total, err := h.attendanceService.History(c.Context(), uint(userID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load attendance history")
	}

	return response.Success(c, "", pagination.NewResponse(records, params, total))
}

// LatestPending handles the open-record lookup
// @Summary Latest pending record
// @Description Return the user's open attendance record, or null when none
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /attendance/latest-pending/{user_id} [get]
func (h *AttendanceHandler) LatestPending(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	record, err := h.attendanceService.LatestPending(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to load pending record")
	}

	// record is null in the payload when the user has no open day
	return response.Success(c, "", fiber.Map{"attendance": record})
}

// Today handles listing today's attendance (admin)
// @Summary Today's attendance
// @Description List every record checked in on the current day
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	records, err := h.attendanceService.Today(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load today's attendance")
	}

	return response.Success(c, "", fiber.Map{
		"attendance": records,
		"total":      len(records),
	})
}

// DateRange handles listing attendance between two dates (admin)
// @Summary Attendance by date range
// @Description List records between start_date and end_date (YYYY-MM-DD), optionally for one user
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance/date-range [get]
func (h *AttendanceHandler) DateRange(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		return response.BadRequest(c, "start_date and end_date are required")
	}

	var userID *uint
	if raw := c.QueryInt("user_id"); raw > 0 {
		id := uint(raw)
		userID = &id
	}

	records, err := h.attendanceService.DateRange(c.Context(), startDate, endDate, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to load attendance")
	}

	return response.Success(c, "", fiber.Map{
		"attendance": records,
		"total":      len(records),
	})
}
