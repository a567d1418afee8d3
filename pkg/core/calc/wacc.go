package calc

// Assumptions used when the statements carry no market data. They sit in
// the middle of the ranges the chat prompt gives the model.
const (
	DefaultCostOfEquity = 0.125 // 10-15%
	DefaultCostOfDebt   = 0.09  // 8-10%, pre-tax
	DefaultTaxRate      = 0.30
)

// WACCInput parameters for calculating Cost of Capital
type WACCInput struct {
	Equity           float64
	Debt             float64
	CostOfEquity     float64
	PreTaxCostOfDebt float64
	TaxRate          float64
}

// WACCResult holds the calculated rates
type WACCResult struct {
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"` // After-tax
	WeightDebt   float64 `json:"weight_debt"`
	WeightEquity float64 `json:"weight_equity"`
	WACC         float64 `json:"wacc"`
}

// CalculateWACC computes WACC = (E/V) * Re + (D/V) * Rd * (1-Tc).
// With no capital at all every field is 0.
func CalculateWACC(input WACCInput) WACCResult {
	v := input.Equity + input.Debt
	if v == 0 {
		return WACCResult{}
	}
	kd := input.PreTaxCostOfDebt * (1 - input.TaxRate)
	we := input.Equity / v
	wd := input.Debt / v
	return WACCResult{
		CostOfEquity: input.CostOfEquity,
		CostOfDebt:   kd,
		WeightDebt:   wd,
		WeightEquity: we,
		WACC:         we*input.CostOfEquity + wd*kd,
	}
}

// BookWACC uses book equity and total liabilities as the capital weights
// together with the default rate assumptions.
func BookWACC(t Totals) WACCResult {
	return CalculateWACC(WACCInput{
		Equity:           t.TotalEquity,
		Debt:             t.TotalLiabilities,
		CostOfEquity:     DefaultCostOfEquity,
		PreTaxCostOfDebt: DefaultCostOfDebt,
		TaxRate:          DefaultTaxRate,
	})
}
