// Package calc derives deterministic totals and ratios from a FinancialReport.
// Ratios whose denominator is zero are reported as 0.
package calc

import (
	"fmt"
	"strings"

	"statement_insight/pkg/models"
)

// Totals are the per-category sums of a report.
type Totals struct {
	CurrentAssets         float64 `json:"current_assets"`
	NonCurrentAssets      float64 `json:"non_current_assets"`
	TotalAssets           float64 `json:"total_assets"`
	CurrentLiabilities    float64 `json:"current_liabilities"`
	NonCurrentLiabilities float64 `json:"non_current_liabilities"`
	TotalLiabilities      float64 `json:"total_liabilities"`
	TotalEquity           float64 `json:"total_equity"`

	OperatingRevenue    float64 `json:"operating_revenue"`
	NonOperatingRevenue float64 `json:"non_operating_revenue"`
	TotalRevenue        float64 `json:"total_revenue"`
	OperatingExpenses   float64 `json:"operating_expenses"`
	NonOperatingExpense float64 `json:"non_operating_expenses"`
	TotalExpenses       float64 `json:"total_expenses"`
	OperatingIncome     float64 `json:"operating_income"`
	NetIncome           float64 `json:"net_income"`
}

type Ratios struct {
	CurrentRatio    float64 `json:"current_ratio"`
	DebtToEquity    float64 `json:"debt_to_equity"`
	DebtRatio       float64 `json:"debt_ratio"`
	WorkingCapital  float64 `json:"working_capital"`
	OperatingMargin float64 `json:"operating_margin"`
	NetMargin       float64 `json:"net_margin"`
	ROE             float64 `json:"roe"`
	ROA             float64 `json:"roa"`
	AssetTurnover   float64 `json:"asset_turnover"`
}

// Summary bundles totals, ratios and the balance check of one report.
type Summary struct {
	Totals Totals     `json:"totals"`
	Ratios Ratios     `json:"ratios"`
	WACC   WACCResult `json:"wacc"`
	// BalanceGap is assets - (liabilities + equity).
	BalanceGap float64 `json:"balance_gap"`
	Balanced   bool    `json:"balanced"`
}

// BalanceTolerance is the relative gap (vs. total assets) still treated as balanced.
const BalanceTolerance = 0.01

func Summarize(r *models.FinancialReport) Summary {
	bs, is := r.BalanceSheet, r.IncomeStatement

	t := Totals{
		CurrentAssets:         models.Total(bs.Assets.Current),
		NonCurrentAssets:      models.Total(bs.Assets.NonCurrent),
		CurrentLiabilities:    models.Total(bs.Liabilities.Current),
		NonCurrentLiabilities: models.Total(bs.Liabilities.NonCurrent),
		TotalEquity:           models.Total(bs.Equity),
		OperatingRevenue:      models.Total(is.Revenue.Operating),
		NonOperatingRevenue:   models.Total(is.Revenue.NonOperating),
		OperatingExpenses:     models.Total(is.Expenses.Operating),
		NonOperatingExpense:   models.Total(is.Expenses.NonOperating),
	}
	t.TotalAssets = t.CurrentAssets + t.NonCurrentAssets
	t.TotalLiabilities = t.CurrentLiabilities + t.NonCurrentLiabilities
	t.TotalRevenue = t.OperatingRevenue + t.NonOperatingRevenue
	t.TotalExpenses = t.OperatingExpenses + t.NonOperatingExpense
	t.OperatingIncome = t.OperatingRevenue - t.OperatingExpenses
	t.NetIncome = t.TotalRevenue - t.TotalExpenses

	s := Summary{
		Totals: t,
		Ratios: Ratios{
			CurrentRatio:    CurrentRatio(t.CurrentAssets, t.CurrentLiabilities),
			DebtToEquity:    DebtToEquity(t.TotalLiabilities, t.TotalEquity),
			DebtRatio:       DebtRatio(t.TotalLiabilities, t.TotalAssets),
			WorkingCapital:  WorkingCapital(t.CurrentAssets, t.CurrentLiabilities),
			OperatingMargin: OperatingMargin(t.OperatingIncome, t.OperatingRevenue),
			NetMargin:       NetMargin(t.NetIncome, t.TotalRevenue),
			ROE:             ROE(t.NetIncome, t.TotalEquity),
			ROA:             ROA(t.NetIncome, t.TotalAssets),
			AssetTurnover:   AssetTurnover(t.TotalRevenue, t.TotalAssets),
		},
		WACC:       BookWACC(t),
		BalanceGap: t.TotalAssets - (t.TotalLiabilities + t.TotalEquity),
	}
	gap := s.BalanceGap
	if gap < 0 {
		gap = -gap
	}
	s.Balanced = gap <= BalanceTolerance*t.TotalAssets
	return s
}

// Metric is one labelled summary line, in presentation order.
type Metric struct {
	Label   string
	Value   float64
	Percent bool
}

// Metrics flattens a summary for display.
func (s Summary) Metrics() []Metric {
	t, r := s.Totals, s.Ratios
	return []Metric{
		{Label: "Total Assets", Value: t.TotalAssets},
		{Label: "Total Liabilities", Value: t.TotalLiabilities},
		{Label: "Total Equity", Value: t.TotalEquity},
		{Label: "Total Revenue", Value: t.TotalRevenue},
		{Label: "Total Expenses", Value: t.TotalExpenses},
		{Label: "Operating Income", Value: t.OperatingIncome},
		{Label: "Net Income", Value: t.NetIncome},
		{Label: "Working Capital", Value: r.WorkingCapital},
		{Label: "Current Ratio", Value: r.CurrentRatio},
		{Label: "Debt to Equity", Value: r.DebtToEquity},
		{Label: "Debt Ratio", Value: r.DebtRatio, Percent: true},
		{Label: "Operating Margin", Value: r.OperatingMargin, Percent: true},
		{Label: "Net Margin", Value: r.NetMargin, Percent: true},
		{Label: "ROE", Value: r.ROE, Percent: true},
		{Label: "ROA", Value: r.ROA, Percent: true},
		{Label: "Asset Turnover", Value: r.AssetTurnover},
		{Label: "WACC (book weights)", Value: s.WACC.WACC, Percent: true},
	}
}

// Text renders the summary as "- Label: value" lines for prompts.
func (s Summary) Text() string {
	var b strings.Builder
	for _, m := range s.Metrics() {
		if m.Percent {
			fmt.Fprintf(&b, "- %s: %.2f%%\n", m.Label, m.Value*100)
		} else {
			fmt.Fprintf(&b, "- %s: %.2f\n", m.Label, m.Value)
		}
	}
	if !s.Balanced {
		fmt.Fprintf(&b, "- Note: assets differ from liabilities + equity by %.2f\n", s.BalanceGap)
	}
	return strings.TrimRight(b.String(), "\n")
}
