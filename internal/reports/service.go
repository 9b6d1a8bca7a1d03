package reports

import (
	"context"
	"errors"
	"time"

	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
)

type Service struct {
	repo     *Repository
	exporter ReportExporter
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, exporter ReportExporter, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, exporter: exporter, AuditSvc: auditSvc}
}

// Export loads the rows for one report type and renders them in the
// requested format.
func (s *Service) Export(ctx context.Context, reportType, format string, filters ReportFilters, operatorID *uint, ip string) ([]byte, string, string, error) {
	if format != FormatCSV && format != FormatExcel && format != FormatPDF {
		return nil, "", "", errors.New("invalid format. Use csv, excel or pdf")
	}

	var data ReportData
	switch reportType {
	case ReportTypeAgenda:
		rows, err := s.repo.AgendaRows(ctx, filters)
		if err != nil {
			return nil, "", "", err
		}
		data.Agenda = rows
	case ReportTypeAttendance:
		rows, err := s.repo.AttendanceRows(ctx, filters)
		if err != nil {
			return nil, "", "", err
		}
		data.Attendance = rows
	default:
		return nil, "", "", errors.New("invalid report type. Use agenda or attendance")
	}

	payload, filename, contentType, err := s.exporter.Export(reportType, format, data)
	if err != nil {
		return nil, "", "", err
	}

	if s.AuditSvc != nil {
		s.AuditSvc.LogAction(ctx, operatorID, "REPORT_EXPORTED", map[string]interface{}{
			"report_type": reportType,
			"format":      format,
		}, ip, "success")
	}
	return payload, filename, contentType, nil
}

// ParseFilters reads optional start/end/status query values.
func ParseFilters(startDate, endDate, status string) (ReportFilters, error) {
	var filters ReportFilters
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return filters, errors.New("invalid start date format. Use YYYY-MM-DD")
		}
		filters.StartDate = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return filters, errors.New("invalid end date format. Use YYYY-MM-DD")
		}
		filters.EndDate = &parsed
	}
	filters.Status = status
	return filters, nil
}
