package models

// Entry is one line item of a financial statement.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Split holds the current / non-current breakdown of assets and liabilities.
type Split struct {
	Current    []Entry `json:"current"`
	NonCurrent []Entry `json:"non_current"`
}

// OperatingSplit holds the operating / non-operating breakdown of revenue and expenses.
type OperatingSplit struct {
	Operating    []Entry `json:"operating"`
	NonOperating []Entry `json:"non_operating"`
}

type BalanceSheet struct {
	Assets      Split   `json:"assets"`
	Liabilities Split   `json:"liabilities"`
	Equity      []Entry `json:"equity"`
}

type IncomeStatement struct {
	Revenue  OperatingSplit `json:"revenue"`
	Expenses OperatingSplit `json:"expenses"`
}

// FinancialReport is the normalized document returned by the extraction endpoint.
// It is built fresh per request and never stored server-side.
type FinancialReport struct {
	BalanceSheet    BalanceSheet    `json:"balance_sheet"`
	IncomeStatement IncomeStatement `json:"income_statement"`
}

// LeafList names one of the nine entry lists of a report.
type LeafList struct {
	Path    string // e.g. "balance_sheet.assets.current"
	Section string // "Balance Sheet" or "Income Statement"
	Label   string // e.g. "Current Assets"
	Entries []Entry
}

// Lists returns the nine entry lists in presentation order.
func (r *FinancialReport) Lists() []LeafList {
	bs, is := &r.BalanceSheet, &r.IncomeStatement
	return []LeafList{
		{"balance_sheet.assets.current", "Balance Sheet", "Current Assets", bs.Assets.Current},
		{"balance_sheet.assets.non_current", "Balance Sheet", "Non-Current Assets", bs.Assets.NonCurrent},
		{"balance_sheet.liabilities.current", "Balance Sheet", "Current Liabilities", bs.Liabilities.Current},
		{"balance_sheet.liabilities.non_current", "Balance Sheet", "Non-Current Liabilities", bs.Liabilities.NonCurrent},
		{"balance_sheet.equity", "Balance Sheet", "Equity", bs.Equity},
		{"income_statement.revenue.operating", "Income Statement", "Operating Revenue", is.Revenue.Operating},
		{"income_statement.revenue.non_operating", "Income Statement", "Non-Operating Revenue", is.Revenue.NonOperating},
		{"income_statement.expenses.operating", "Income Statement", "Operating Expenses", is.Expenses.Operating},
		{"income_statement.expenses.non_operating", "Income Statement", "Non-Operating Expenses", is.Expenses.NonOperating},
	}
}

// IsEmpty reports whether every entry list is empty.
func (r *FinancialReport) IsEmpty() bool {
	for _, l := range r.Lists() {
		if len(l.Entries) > 0 {
			return false
		}
	}
	return true
}

// Total sums the values of a list of entries.
func Total(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	return sum
}
