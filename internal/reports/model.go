package reports

import "time"

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

const (
	ReportTypeAgenda     = "agenda"
	ReportTypeAttendance = "attendance"
)

// AgendaReportRow is one scheduled event in the agenda export.
type AgendaReportRow struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time"`
	Responsible string    `json:"responsible"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttendanceReportRow is one check-in joined with the member's name.
type AttendanceReportRow struct {
	MemberID    string    `json:"member_id"`
	MemberName  string    `json:"member_name"`
	CheckInDate time.Time `json:"check_in_date"`
}

// ReportFilters bounds a report to a date window.
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
}

// ReportData carries whichever rows the requested report needs.
type ReportData struct {
	Agenda     []AgendaReportRow
	Attendance []AttendanceReportRow
}
