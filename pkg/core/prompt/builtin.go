package prompt

// Built-in prompt IDs.
const (
	IDExtraction = "extraction.financial_report"
	IDChat       = "chat.financial_analysis"
)

// Defaults for the chat prompt's company context.
const (
	DefaultCompanyName    = "Shubh Sawariya Industries"
	DefaultCompanyContext = `Shubh Sawariya Industries Private Limited is a manufacturing company based in Jamshedpur, Jharkhand, India.
Established in 2019 (Jamshedpur location), the company manufactures and supplies food carts, food vans, push carts, and kiosks.
The company is directed by Mr. Nishant Agarwal with an employee count between 50-100.
Annual turnover: Below Rs. 0.5 Crore.
The company holds ISO 9001:2015 certification for quality management.`
)

const extractionTemplate = `Extract financial data from the following text. Focus on:
1. Balance Sheet items with detailed categorization:
   - Current Assets (e.g., Cash, Accounts Receivable, Inventory)
   - Non-Current Assets (e.g., Property, Plant, Equipment, Intangible Assets)
   - Current Liabilities (e.g., Accounts Payable, Short-term Debt)
   - Non-Current Liabilities (e.g., Long-term Debt, Deferred Tax Liabilities)
   - Equity components (e.g., Common Stock, Retained Earnings)
2. Profit & Loss items with detailed categorization:
   - Operating Revenue (e.g., Revenue from Operations, Sales Revenue, Service Revenue)
   - Non-Operating Revenue (e.g., Other Income, Interest Income, Dividend Income)
   - Operating Expenses (e.g., Cost of Materials Consumed, Employees Benefit Expenses, Cost of Goods Sold, Salaries, Rent, Changes in Inventories of WIP & Finished Goods)
   - Non-Operating Expenses (e.g., Finance Cost, Interest Expense, Loss on Sale of Assets, Depreciation & Amortization Expenses if not part of operations)

Important rules:
- All amounts must be numeric values (convert text/string amounts to numbers)
- Remove any currency symbols (e.g., $, €, ₹) and commas from amounts
- Ensure all values are positive numbers
- Use 0 if an amount cannot be determined
- Categorize revenue and expenses into operating and non-operating based on their nature:
  - Operating Revenue: Directly related to the core business activities (e.g., sales of goods or services)
  - Non-Operating Revenue: Not related to core business (e.g., interest earned, dividends, other income)
  - Operating Expenses: Directly related to core business operations (e.g., cost of materials, employee salaries, changes in inventory)
  - Non-Operating Expenses: Not related to core operations (e.g., finance costs, interest expenses, depreciation if not operational)
- If an item cannot be categorized, place it in the appropriate default category (e.g., use 'operating' for revenue/expenses if unclear)
- For expenses labeled as "Other Expenses", attempt to classify them as operating unless they clearly relate to non-operating activities (e.g., interest or finance costs)

Format the response as a valid JSON object with this type of structure:
{
    "balance_sheet": {
        "assets": {
            "current": [ {"name": "item_name", "value": numeric_amount} ],
            "non_current": [ {"name": "item_name", "value": numeric_amount} ]
        },
        "liabilities": {
            "current": [ {"name": "item_name", "value": numeric_amount} ],
            "non_current": [ {"name": "item_name", "value": numeric_amount} ]
        },
        "equity": [ {"name": "item_name", "value": numeric_amount} ]
    },
    "income_statement": {
        "revenue": {
            "operating": [ {"name": "item_name", "value": numeric_amount} ],
            "non_operating": [ {"name": "item_name", "value": numeric_amount} ]
        },
        "expenses": {
            "operating": [ {"name": "item_name", "value": numeric_amount} ],
            "non_operating": [ {"name": "item_name", "value": numeric_amount} ]
        }
    }
}

Example output for clarity:
{
    "balance_sheet": {
        "assets": {
            "current": [
                {"name": "Cash", "value": 5000},
                {"name": "Accounts Receivable", "value": 3000}
            ],
            "non_current": [
                {"name": "Property", "value": 10000},
                {"name": "Equipment", "value": 7000}
            ]
        },
        "liabilities": {
            "current": [ {"name": "Accounts Payable", "value": 2000} ],
            "non_current": [ {"name": "Long-term Debt", "value": 5000} ]
        },
        "equity": [
            {"name": "Common Stock", "value": 8000},
            {"name": "Retained Earnings", "value": 4000}
        ]
    },
    "income_statement": {
        "revenue": {
            "operating": [ {"name": "Revenue from Operations", "value": 15000} ],
            "non_operating": [ {"name": "Other Income", "value": 500} ]
        },
        "expenses": {
            "operating": [
                {"name": "Cost of Materials Consumed", "value": 8000},
                {"name": "Employees Benefit Expenses", "value": 3000},
                {"name": "Changes in Inventories of WIP & Finished Goods", "value": 1000}
            ],
            "non_operating": [
                {"name": "Finance Cost", "value": 1000},
                {"name": "Depreciation & Amortization Expenses", "value": 500}
            ]
        }
    }
}

Text to analyze: {{.Text}}
`

const chatTemplate = `Analyze the following financial data for {{.CompanyName}} and answer this question: {{.Question}}

Company Context:
{{.CompanyContext}}

Financial Data:
{{.FinancialData}}
{{if .KeyMetrics}}
Key Metrics (computed from the data above):
{{.KeyMetrics}}
{{end}}
If the question is about WACC (Weighted Average Cost of Capital), calculate it using this formula:
WACC = (E/V) * Re + (D/V) * Rd * (1-Tc)
Where:
- E = Market value of equity
- D = Market value of debt
- V = Total value of the firm (E + D)
- Re = Cost of equity (use CAPM if possible, otherwise assume 10-15%)
- Rd = Cost of debt (use average interest rate if available, otherwise assume 8-10%)
- Tc = Corporate tax rate (assume 30% if not specified)

For debt-to-equity ratio, calculate Total Debt / Total Equity.

Please provide a clear, concise answer focusing on the specific financial metrics requested.
Format your response using markdown for better readability:
- Use **bold** for important numbers and metrics
- Use headings (## and ###) for sections
- Use bullet points where appropriate
- Include formula calculations when relevant

If the question cannot be answered with the available data, explain what additional information would be needed.`

func builtinPrompts() []*PromptTemplate {
	return []*PromptTemplate{
		{
			ID:             IDExtraction,
			Name:           "Financial report extraction",
			Category:       "extraction",
			Description:    "Turns statement text into the balance sheet / income statement JSON document",
			UserPromptTmpl: extractionTemplate,
			Variables: []PromptVariable{
				{Name: "Text", Type: "string", Description: "Text extracted from the uploaded PDF", Required: true},
			},
			Version: "1",
		},
		{
			ID:             IDChat,
			Name:           "Financial analysis chat",
			Category:       "chat",
			Description:    "Answers a question about a previously extracted report",
			UserPromptTmpl: chatTemplate,
			Variables: []PromptVariable{
				{Name: "Question", Type: "string", Required: true},
				{Name: "FinancialData", Type: "string", Description: "Report as indented JSON", Required: true},
				{Name: "KeyMetrics", Type: "string", Description: "Precomputed totals and ratios, may be empty"},
				{Name: "CompanyName", Type: "string", Default: DefaultCompanyName},
				{Name: "CompanyContext", Type: "string", Default: DefaultCompanyContext},
			},
			Version: "1",
		},
	}
}
