// Package export renders a FinancialReport as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/models"
)

const (
	SheetBalance = "Balance Sheet"
	SheetIncome  = "Income Statement"
	SheetSummary = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "financial_report.xlsx"
)

var headers = []string{"Section", "Category", "Item", "Value"}

// WorkbookXLSX returns the report as XLSX bytes: one sheet per statement,
// where every category is followed by a total row, plus a Summary sheet.
func WorkbookXLSX(report *models.FinancialReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default "Sheet1" becomes the balance sheet.
	if err := f.SetSheetName("Sheet1", SheetBalance); err != nil {
		return nil, err
	}
	for _, sheet := range []string{SheetIncome, SheetSummary} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	next := map[string]int{SheetBalance: 2, SheetIncome: 2}
	for _, sheet := range []string{SheetBalance, SheetIncome} {
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
	}

	rows := 0
	for _, list := range report.Lists() {
		sheet := list.Section
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, next[sheet])
			_ = f.SetCellValue(sheet, cell, v)
		}
		for _, e := range list.Entries {
			write(1, list.Section)
			write(2, list.Label)
			write(3, e.Name)
			write(4, e.Value)
			next[sheet]++
			rows++
		}
		write(1, list.Section)
		write(2, list.Label)
		write(3, "Total "+list.Label)
		write(4, models.Total(list.Entries))
		next[sheet]++
	}

	for _, sheet := range []string{SheetBalance, SheetIncome} {
		_ = f.SetColWidth(sheet, "A", "A", 18)
		_ = f.SetColWidth(sheet, "B", "B", 26)
		_ = f.SetColWidth(sheet, "C", "C", 40)
		_ = f.SetColWidth(sheet, "D", "D", 16)
	}
	writeSummary(f, calc.Summarize(report))
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	logger.Log.WithField("rows", rows).Info("export.xlsx.ok")
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, s calc.Summary) {
	_ = f.SetCellValue(SheetSummary, "A1", "Metric")
	_ = f.SetCellValue(SheetSummary, "B1", "Value")

	pct, _ := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	for i, m := range s.Metrics() {
		row := i + 2
		label, _ := excelize.CoordinatesToCellName(1, row)
		value, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(SheetSummary, label, m.Label)
		_ = f.SetCellValue(SheetSummary, value, m.Value)
		if m.Percent {
			_ = f.SetCellStyle(SheetSummary, value, value, pct)
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 22)
	_ = f.SetColWidth(SheetSummary, "B", "B", 16)
}
