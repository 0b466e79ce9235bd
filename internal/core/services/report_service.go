package services

import (
	"bytes"
	"context"
	"fmt"

	"geoattend/internal/adapters/persistence/models"
	"geoattend/internal/adapters/persistence/repositories"

	"github.com/xuri/excelize/v2"
)

// Display formats for exported rows
const (
	reportDateFormat = "02/01/2006"
	reportTimeFormat = "15:04:05"
	reportSheetName  = "Attendance"
)

// ReportService builds attendance exports for a date range
type ReportService struct {
	attendanceRepo repositories.AttendanceRepository
}

// NewReportService creates a new report service
func NewReportService(attendanceRepo repositories.AttendanceRepository) *ReportService {
	return &ReportService{attendanceRepo: attendanceRepo}
}

// ReportInput represents report generation input
type ReportInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	UserID    *uint  `json:"user_id,omitempty"`
	Format    string `json:"format"` // "excel" (default) or "json"
}

// ReportRow is one denormalized export line: attendance joined with the
// owning user, every field pre-formatted for display.
type ReportRow struct {
	ID               uint   `json:"id"`
	Employee         string `json:"employee"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	CheckInDate      string `json:"check_in_date"`
	CheckInTime      string `json:"check_in_time"`
	CheckOutDate     string `json:"check_out_date"`
	CheckOutTime     string `json:"check_out_time"`
	Status           string `json:"status"`
	TotalHours       string `json:"total_hours"`
	CheckInLocation  string `json:"check_in_location"`
	CheckOutLocation string `json:"check_out_location"`
}

// ReportOutput represents a JSON-format report
type ReportOutput struct {
	Period       string      `json:"period"`
	TotalRecords int         `json:"total_records"`
	Data         []ReportRow `json:"data"`
}

// Generate loads the date range and projects it into export rows,
// newest check-in first.
func (s *ReportService) Generate(ctx context.Context, input *ReportInput) ([]ReportRow, error) {
	from, to, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDateRangeWithUsers(ctx, from, to, input.UserID)
	if err != nil {
		return nil, err
	}

	return ProjectRows(records), nil
}

// ProjectRows maps attendance records onto export rows. Pure transform,
// no side effects.
func ProjectRows(records []*models.Attendance) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, record := range records {
		row := ReportRow{
			ID:               record.ID,
			Employee:         record.UserName,
			Email:            record.User.Email,
			Department:       orNA(record.User.Department),
			CheckInDate:      record.CheckInTime.Format(reportDateFormat),
			CheckInTime:      record.CheckInTime.Format(reportTimeFormat),
			CheckOutDate:     "N/A",
			CheckOutTime:     "N/A",
			Status:           orNA(record.Status),
			TotalHours:       "N/A",
			CheckInLocation:  FormatLocation(&record.CheckInLat, &record.CheckInLng),
			CheckOutLocation: FormatLocation(record.CheckOutLat, record.CheckOutLng),
		}

		if record.User.Name != "" {
			row.Employee = record.User.Name
		}
		if record.CheckOutTime != nil {
			row.CheckOutDate = record.CheckOutTime.Format(reportDateFormat)
			row.CheckOutTime = record.CheckOutTime.Format(reportTimeFormat)
		}
		if record.TotalHours != nil {
			row.TotalHours = fmt.Sprintf("%.2f hours", *record.TotalHours)
		}

		rows = append(rows, row)
	}
	return rows
}

// FormatLocation renders a coordinate pair as "lat, lng" with six decimal
// places, or "N/A" when either coordinate is absent.
func FormatLocation(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.6f, %.6f", *lat, *lng)
}

// BuildOutput wraps rows into the JSON report payload
func BuildOutput(input *ReportInput, rows []ReportRow) *ReportOutput {
	return &ReportOutput{
		Period:       fmt.Sprintf("%s to %s", input.StartDate, input.EndDate),
		TotalRecords: len(rows),
		Data:         rows,
	}
}

// Filename returns the download filename for an Excel report
func Filename(input *ReportInput) string {
	return fmt.Sprintf("attendance_report_%s_to_%s.xlsx", input.StartDate, input.EndDate)
}

var reportColumns = []struct {
	Header string
	Width  float64
}{
	{"ID", 8},
	{"Employee", 22},
	{"Email", 28},
	{"Department", 16},
	{"Check-In Date", 14},
	{"Check-In Time", 14},
	{"Check-Out Date", 14},
	{"Check-Out Time", 14},
	{"Status", 12},
	{"Total Hours", 14},
	{"Check-In Location", 26},
	{"Check-Out Location", 26},
}

// RenderExcel renders rows into an xlsx workbook ready to stream
func (s *ReportService) RenderExcel(rows []ReportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0070C0"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	headers := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		headers[i] = col.Header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(reportSheetName, name, name, col.Width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(reportSheetName, "A1", &headers); err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(reportColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.ID, row.Employee, row.Email, row.Department,
			row.CheckInDate, row.CheckInTime, row.CheckOutDate, row.CheckOutTime,
			row.Status, row.TotalHours, row.CheckInLocation, row.CheckOutLocation,
		}
		if err := f.SetSheetRow(reportSheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
