package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pavetrack/billing-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

func (g *Generator) Generate(summary model.ProjectBillingSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Project Billing Statement", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, summary.Project.Name, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Quantities", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Planned: %s m2", formatAmount(summary.Project.PlannedQuantity, 3)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Executed: %s m2", formatAmount(summary.ExecutedAmount, 3)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Committed services", "", 1, "L", false, 0, "")

	headers := []string{"Service", "Unit", "Unit price", "Quantity", "Line total"}
	colWidths := []float64{70, 20, 30, 30, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, c := range summary.Commitments {
		row := []string{
			c.ServiceName,
			string(c.UnitKind),
			formatAmount(c.UnitPrice, 2),
			formatAmount(c.Quantity, 3),
			formatAmount(c.LineTotal, 2),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Forecast total: %s", formatAmount(summary.ForecastTotal, 2)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Executed total: %s", formatAmount(summary.ExecutedTotal, 2)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Expenses", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	for _, ct := range summary.ExpensesByCategory {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", ct.Category, formatAmount(ct.Total, 2)), "", 1, "L", false, 0, "")
	}
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total expenses: %s", formatAmount(summary.ExpenseTotal, 2)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}
