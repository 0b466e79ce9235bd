package services

import (
	"testing"
	"time"

	"geoattend/internal/adapters/persistence/models"
)

func TestFormatLocation(t *testing.T) {
	lat := 15.7634
	lng := -86.75342

	if got, want := FormatLocation(&lat, &lng), "15.763400, -86.753420"; got != want {
		t.Errorf("FormatLocation = %q, want %q", got, want)
	}
	if got := FormatLocation(nil, &lng); got != "N/A" {
		t.Errorf("FormatLocation with nil latitude = %q, want N/A", got)
	}
	if got := FormatLocation(&lat, nil); got != "N/A" {
		t.Errorf("FormatLocation with nil longitude = %q, want N/A", got)
	}
}

func TestProjectRows(t *testing.T) {
	checkIn := time.Date(2025, 6, 2, 8, 5, 30, 0, time.Local)
	checkOut := checkIn.Add(9*time.Hour + 30*time.Minute)
	outLat, outLng := 15.7635, -86.7535
	hours := 9.5

	completed := &models.Attendance{
		ID:           1,
		UserName:     "maria (stale)",
		CheckInTime:  checkIn,
		CheckInLat:   15.7634,
		CheckInLng:   -86.75342,
		CheckOutTime: &checkOut,
		CheckOutLat:  &outLat,
		CheckOutLng:  &outLng,
		Status:       "on-time",
		TotalHours:   &hours,
		User: models.User{
			Name:       "Maria Lopez",
			Email:      "maria@geoattend.app",
			Department: "Operations",
		},
	}
	pending := &models.Attendance{
		ID:          2,
		UserName:    "Jose Reyes",
		CheckInTime: checkIn,
		CheckInLat:  15.7634,
		CheckInLng:  -86.75342,
		Status:      "on-time",
		User: models.User{
			Email: "jose@geoattend.app",
		},
	}

	rows := ProjectRows([]*models.Attendance{completed, pending})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Employee != "Maria Lopez" {
		t.Errorf("employee = %q, the joined user name should win over the snapshot", first.Employee)
	}
	if first.CheckInDate != "02/06/2025" {
		t.Errorf("check-in date = %q, want 02/06/2025", first.CheckInDate)
	}
	if first.CheckInTime != "08:05:30" {
		t.Errorf("check-in time = %q, want 08:05:30", first.CheckInTime)
	}
	if first.CheckOutTime != "17:35:30" {
		t.Errorf("check-out time = %q, want 17:35:30", first.CheckOutTime)
	}
	if first.TotalHours != "9.50 hours" {
		t.Errorf("total hours = %q, want \"9.50 hours\"", first.TotalHours)
	}
	if first.CheckInLocation != "15.763400, -86.753420" {
		t.Errorf("check-in location = %q", first.CheckInLocation)
	}
	if first.Department != "Operations" {
		t.Errorf("department = %q, want Operations", first.Department)
	}

	second := rows[1]
	if second.Employee != "Jose Reyes" {
		t.Errorf("employee = %q, snapshot should be used when the join has no name", second.Employee)
	}
	if second.CheckOutDate != "N/A" || second.CheckOutTime != "N/A" {
		t.Errorf("pending check-out fields = %q / %q, want N/A", second.CheckOutDate, second.CheckOutTime)
	}
	if second.TotalHours != "N/A" {
		t.Errorf("pending total hours = %q, want N/A", second.TotalHours)
	}
	if second.CheckOutLocation != "N/A" {
		t.Errorf("pending check-out location = %q, want N/A", second.CheckOutLocation)
	}
	if second.Department != "N/A" {
		t.Errorf("missing department = %q, want N/A", second.Department)
	}
}

func TestBuildOutputAndFilename(t *testing.T) {
	input := &ReportInput{StartDate: "2025-06-01", EndDate: "2025-06-30"}
	rows := []ReportRow{{ID: 1}, {ID: 2}}

	out := BuildOutput(input, rows)
	if out.Period != "2025-06-01 to 2025-06-30" {
		t.Errorf("period = %q", out.Period)
	}
	if out.TotalRecords != 2 {
		t.Errorf("total records = %d, want 2", out.TotalRecords)
	}

	if got, want := Filename(input), "attendance_report_2025-06-01_to_2025-06-30.xlsx"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestRenderExcel(t *testing.T) {
	service := NewReportService(nil)

	rows := []ReportRow{{
		ID:               1,
		Employee:         "Maria Lopez",
		Email:            "maria@geoattend.app",
		Department:       "Operations",
		CheckInDate:      "02/06/2025",
		CheckInTime:      "08:05:30",
		CheckOutDate:     "02/06/2025",
		CheckOutTime:     "17:35:30",
		Status:           "on-time",
		TotalHours:       "9.50 hours",
		CheckInLocation:  "15.763400, -86.753420",
		CheckOutLocation: "15.763500, -86.753500",
	}}

	buf, err := service.RenderExcel(rows)
	if err != nil {
		t.Fatalf("RenderExcel failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendered workbook is empty")
	}

	// xlsx files are zip archives
	head := buf.Bytes()[:2]
	if head[0] != 'P' || head[1] != 'K' {
		t.Errorf("output does not look like an xlsx file, header = %v", head)
	}
}
