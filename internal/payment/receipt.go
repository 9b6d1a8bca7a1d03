package payment

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/viniciusmf/gym-management-backend/internal/member"
)

// buildReceiptPDF renders a one-page payment receipt.
func buildReceiptPDF(p *Payment, m *member.Member) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payment Receipt")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 10)
	labels := []string{"Receipt No", "Member", "CPF", "Amount", "Payment Date", "Next Due Date", "Status"}
	paymentDate := ""
	if p.PaymentDate != nil {
		paymentDate = p.PaymentDate.Format("2006-01-02")
	}
	values := []string{
		p.ID,
		m.FullName,
		m.CPF,
		fmt.Sprintf("%.2f", p.Amount),
		paymentDate,
		p.NextPaymentDate.Format("2006-01-02"),
		string(p.Status),
	}

	for i, label := range labels {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 8, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 8, values[i], "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, "This receipt was generated automatically.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
