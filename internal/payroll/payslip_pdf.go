package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// renderPayslipPDF lays out a single-page payslip. Amounts are the
// final rounded values, printed to two decimal places.
func renderPayslipPDF(p PayslipResult, fullName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if fullName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", fullName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", p.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax year: %s", p.TaxYear))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", p.PayDate.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Payments")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	payslipRow(pdf, "Gross pay", p.GrossPay)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	payslipRow(pdf, "Income tax (PAYE)", p.IncomeTax)
	payslipRow(pdf, "National Insurance", p.EmployeeNI)
	payslipRow(pdf, "Pension", p.EmployeePension)
	payslipRow(pdf, "Student loan", p.StudentLoan)
	payslipRow(pdf, "Total deductions", p.TotalDeductions())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	payslipRow(pdf, "Net pay", p.NetPay)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	payslipRow(pdf, "Employer National Insurance", p.EmployerNI)
	payslipRow(pdf, "Employer pension", p.EmployerPension)
	payslipRow(pdf, "Total employer cost", p.EmployerTotalCost)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func payslipRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.Cell(120, 7, label)
	pdf.CellFormat(40, 7, amount.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.Ln(7)
}
