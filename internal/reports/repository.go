package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📄 Agenda rows within the filter window
func (r *Repository) AgendaRows(ctx context.Context, filters ReportFilters) ([]AgendaReportRow, error) {
	var rows []AgendaReportRow
	q := r.DB.WithContext(ctx).
		Table("agenda_events").
		Select("id, title, event_date, event_time, responsible, status, created_at").
		Order("event_date ASC, event_time ASC")

	if filters.StartDate != nil {
		q = q.Where("event_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		q = q.Where("event_date <= ?", *filters.EndDate)
	}
	if filters.Status != "" && filters.Status != "all" {
		q = q.Where("status = ?", filters.Status)
	}

	err := q.Scan(&rows).Error
	return rows, err
}

// ===========================
// 📄 Attendance rows joined with member names
func (r *Repository) AttendanceRows(ctx context.Context, filters ReportFilters) ([]AttendanceReportRow, error) {
	var rows []AttendanceReportRow
	q := r.DB.WithContext(ctx).
		Table("attendance").
		Select("attendance.member_id, members.full_name AS member_name, attendance.check_in_date").
		Joins("LEFT JOIN members ON members.id = attendance.member_id").
		Order("attendance.check_in_date ASC, members.full_name ASC")

	if filters.StartDate != nil {
		q = q.Where("attendance.check_in_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		q = q.Where("attendance.check_in_date <= ?", *filters.EndDate)
	}

	err := q.Scan(&rows).Error
	return rows, err
}
