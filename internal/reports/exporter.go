package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders report rows in the requested format.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeAgenda:
		return e.exportAgendaByFormat(format, timestamp, data.Agenda)
	case ReportTypeAttendance:
		return e.exportAttendanceByFormat(format, timestamp, data.Attendance)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// AGENDA EXPORTS
//// ============================

func (e *reportExporter) exportAgendaByFormat(format, timestamp string, rows []AgendaReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAgendaExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("agenda_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportAgendaCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("agenda_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportAgendaPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("agenda_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for agenda: %s", format)
	}
}

func (e *reportExporter) exportAgendaCSV(rows []AgendaReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Date", "Time", "Responsible", "Status", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.EventDate.Format("2006-01-02"),
			r.EventTime,
			r.Responsible,
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAgendaExcel(rows []AgendaReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Agenda"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Title", "Date", "Time", "Responsible", "Status", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.EventDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.EventTime)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Responsible)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportAgendaPDF(rows []AgendaReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Agenda Report")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 80, 30, 20, 60, 25, 40}
	headers := []string{"ID", "Title", "Date", "Time", "Responsible", "Status", "Created At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.EventDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.EventTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Responsible, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// ATTENDANCE EXPORTS
//// ============================

func (e *reportExporter) exportAttendanceByFormat(format, timestamp string, rows []AttendanceReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAttendanceExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportAttendanceCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportAttendancePDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for attendance: %s", format)
	}
}

func (e *reportExporter) exportAttendanceCSV(rows []AttendanceReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Member ID", "Member Name", "Check-in Date"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.MemberID,
			r.MemberName,
			r.CheckInDate.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAttendanceExcel(rows []AttendanceReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Attendance"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Member ID", "Member Name", "Check-in Date"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.MemberID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.MemberName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.CheckInDate.Format("2006-01-02"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportAttendancePDF(rows []AttendanceReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{70, 80, 40}
	headers := []string{"Member ID", "Member Name", "Check-in Date"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.MemberID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.MemberName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.CheckInDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
