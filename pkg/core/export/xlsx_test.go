package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"statement_insight/pkg/models"
)

func sampleReport() *models.FinancialReport {
	return &models.FinancialReport{
		BalanceSheet: models.BalanceSheet{
			Assets: models.Split{
				Current:    []models.Entry{{Name: "Cash", Value: 5000}, {Name: "Inventory", Value: 1500}},
				NonCurrent: []models.Entry{{Name: "Plant", Value: 20000}},
			},
			Equity: []models.Entry{{Name: "Share Capital", Value: 10000}},
		},
		IncomeStatement: models.IncomeStatement{
			Revenue: models.OperatingSplit{Operating: []models.Entry{{Name: "Sales", Value: 12000}}},
		},
	}
}

func TestWorkbookXLSX(t *testing.T) {
	data, err := WorkbookXLSX(sampleReport())
	if err != nil {
		t.Fatalf("WorkbookXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != SheetBalance || sheets[1] != SheetIncome || sheets[2] != SheetSummary {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := f.GetRows(SheetBalance)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	// header + 4 entries + 5 totals
	if len(rows) != 10 {
		t.Fatalf("expected 10 balance sheet rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Section" || rows[0][3] != "Value" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "Cash" || rows[1][3] != "5000" {
		t.Errorf("unexpected first entry row: %v", rows[1])
	}
	if rows[3][2] != "Total Current Assets" || rows[3][3] != "6500" {
		t.Errorf("unexpected total row: %v", rows[3])
	}

	income, _ := f.GetRows(SheetIncome)
	// header + 1 entry + 4 totals
	if len(income) != 6 {
		t.Fatalf("expected 6 income rows, got %d: %v", len(income), income)
	}
	if income[1][2] != "Sales" {
		t.Errorf("unexpected income entry: %v", income[1])
	}

	summary, _ := f.GetRows(SheetSummary)
	if len(summary) < 2 || summary[1][0] != "Total Assets" || summary[1][1] != "26500" {
		t.Errorf("unexpected summary rows: %v", summary)
	}
}

func TestWorkbookXLSX_EmptyReport(t *testing.T) {
	data, err := WorkbookXLSX(&models.FinancialReport{})
	if err != nil {
		t.Fatalf("WorkbookXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(SheetBalance)
	if len(rows) != 6 {
		t.Errorf("expected header and 5 total rows, got %d", len(rows))
	}
}
