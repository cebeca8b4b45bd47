package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pavetrack/billing-service/internal/model"
	"github.com/pavetrack/billing-service/internal/service"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(summary model.ProjectBillingSummary) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, summary); err != nil {
		return nil, err
	}

	commitmentsSheet := "Commitments"
	file.NewSheet(commitmentsSheet)
	if err := g.writeCommitments(file, commitmentsSheet, summary); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, summary model.ProjectBillingSummary) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Project")
	set("B1", summary.Project.Name)
	set("A2", "Created")
	set("B2", formatDate(summary.Project.CreatedAt))
	set("A3", "Planned quantity, m2")
	set("B3", formatAmount(summary.Project.PlannedQuantity, 3))
	set("A4", "Executed quantity, m2")
	set("B4", formatAmount(summary.ExecutedAmount, 3))
	set("A5", "Forecast total")
	set("B5", formatAmount(summary.ForecastTotal, 2))
	set("A6", "Executed total")
	set("B6", formatAmount(summary.ExecutedTotal, 2))
	set("A7", "Expenses total")
	set("B7", formatAmount(summary.ExpenseTotal, 2))

	tableRow := 9
	set(fmt.Sprintf("A%d", tableRow), "Expense category")
	set(fmt.Sprintf("B%d", tableRow), "Amount")
	for i, ct := range summary.ExpensesByCategory {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), string(ct.Category))
		set(fmt.Sprintf("B%d", row), formatAmount(ct.Total, 2))
	}

	_ = file.SetColWidth(sheet, "A", "A", 30)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeCommitments(file *excelize.File, sheet string, summary model.ProjectBillingSummary) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Service",
		"Unit",
		"Pricing",
		"Unit price",
		"Quantity",
		"Line total",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, c := range summary.Commitments {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), c.ServiceName)
		set(fmt.Sprintf("B%d", row), string(c.UnitKind))
		set(fmt.Sprintf("C%d", row), pricingLabel(c.UnitKind))
		set(fmt.Sprintf("D%d", row), formatAmount(c.UnitPrice, 2))
		set(fmt.Sprintf("E%d", row), formatAmount(c.Quantity, 3))
		set(fmt.Sprintf("F%d", row), formatAmount(c.LineTotal, 2))
	}

	totalRow := len(summary.Commitments) + 3
	set(fmt.Sprintf("A%d", totalRow), "Rate sum per m2")
	set(fmt.Sprintf("D%d", totalRow), formatAmount(service.RateUnitPriceSum(summary.Commitments), 2))

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	_ = file.SetColWidth(sheet, "D", "F", 16)
	return nil
}

func pricingLabel(kind model.UnitKind) string {
	if kind.RateBased() {
		return "rate-based"
	}
	return "fixed-fee"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return strings.TrimSpace(fmt.Sprintf(format, value))
}
