package calc

// =============================================================================
// LIQUIDITY & SOLVENCY
// =============================================================================

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func CurrentRatio(currentAssets, currentLiabilities float64) float64 {
	return safeDiv(currentAssets, currentLiabilities)
}

// DebtToEquity uses total liabilities as debt, matching the chat prompt's
// "Total Debt / Total Equity" definition.
func DebtToEquity(totalLiabilities, totalEquity float64) float64 {
	return safeDiv(totalLiabilities, totalEquity)
}

func DebtRatio(totalLiabilities, totalAssets float64) float64 {
	return safeDiv(totalLiabilities, totalAssets)
}

func WorkingCapital(currentAssets, currentLiabilities float64) float64 {
	return currentAssets - currentLiabilities
}

// =============================================================================
// PROFITABILITY
// =============================================================================

func NetMargin(netIncome, revenue float64) float64 {
	return safeDiv(netIncome, revenue)
}

func OperatingMargin(operatingIncome, operatingRevenue float64) float64 {
	return safeDiv(operatingIncome, operatingRevenue)
}

func ROE(netIncome, totalEquity float64) float64 {
	return safeDiv(netIncome, totalEquity)
}

func ROA(netIncome, totalAssets float64) float64 {
	return safeDiv(netIncome, totalAssets)
}

func AssetTurnover(revenue, totalAssets float64) float64 {
	return safeDiv(revenue, totalAssets)
}
