package calc

import "testing"

func TestCalculateWACC(t *testing.T) {
	tests := []struct {
		name  string
		input WACCInput
		want  float64
	}{
		{"all equity", WACCInput{Equity: 100, CostOfEquity: 0.12, PreTaxCostOfDebt: 0.08, TaxRate: 0.3}, 0.12},
		{"all debt", WACCInput{Debt: 100, CostOfEquity: 0.12, PreTaxCostOfDebt: 0.10, TaxRate: 0.3}, 0.07},
		{"half and half", WACCInput{Equity: 50, Debt: 50, CostOfEquity: 0.12, PreTaxCostOfDebt: 0.10, TaxRate: 0.3}, 0.095},
		{"no capital", WACCInput{CostOfEquity: 0.12}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateWACC(tt.input).WACC; !approx(got, tt.want) {
				t.Errorf("WACC = %f, want %f", got, tt.want)
			}
		})
	}
}
