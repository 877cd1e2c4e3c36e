package payroll

import (
	"fmt"
	"io"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/period"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writePayslipPDF(w io.Writer, p payroll.Payslip) error {
	label := p.Period
	if parsed, err := period.Parse(p.Period); err == nil {
		label = parsed.Label()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Period, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", deref(p.EmployeeName)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("NIK: %s", deref(p.EmployeeNIK)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", deref(p.PositionName)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", label))
	pdf.Ln(12)

	rows := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Base salary", p.BaseSalary},
		{"Total deductions", p.TotalDeductions},
		{"Net salary", p.NetSalary},
	}
	for i, row := range rows {
		if i == len(rows)-1 {
			pdf.SetFont("Helvetica", "B", 12)
		}
		pdf.CellFormat(90, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, money(row.amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Issued %s, ref %s", p.CreatedAt.Format("2006-01-02"), p.ID))

	return pdf.Output(w)
}

var workbookHeader = []interface{}{"Employee", "NIK", "Position", "Period", "Base Salary", "Total Deductions", "Net Salary"}

func writePayslipWorkbook(w io.Writer, p period.Period, payslips []payroll.Payslip) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payslips " + p.String()
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &workbookHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	total := decimal.Zero
	for i, ps := range payslips {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			deref(ps.EmployeeName),
			deref(ps.EmployeeNIK),
			deref(ps.PositionName),
			ps.Period,
			ps.BaseSalary.InexactFloat64(),
			ps.TotalDeductions.InexactFloat64(),
			ps.NetSalary.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		total = total.Add(ps.NetSalary)
	}

	totalRow := len(payslips) + 2
	labelCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	if err := f.SetCellValue(sheet, labelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, totalCell, total.InexactFloat64()); err != nil {
		return err
	}

	lastMoney, _ := excelize.CoordinatesToCellName(7, totalRow)
	if err := f.SetCellStyle(sheet, "E2", lastMoney, moneyStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "C", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "D", "G", 18); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
