package validate

import (
	"testing"
)

const validReport = `{
  "balance_sheet": {"assets": {"current": [{"name": "Cash", "value": 5000}]}, "liabilities": {}, "equity": []},
  "income_statement": {"revenue": {"operating": [{"name": "Sales", "value": "1,000"}]}, "expenses": {}}
}`

func TestChatRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"message": "What is WACC?", "financial_data": ` + validReport + `}`, false},
		{"missing message", `{"financial_data": ` + validReport + `}`, true},
		{"empty message", `{"message": "", "financial_data": ` + validReport + `}`, true},
		{"whitespace message", `{"message": "  \n\t ", "financial_data": ` + validReport + `}`, true},
		{"message with padding", `{"message": "  WACC?  ", "financial_data": ` + validReport + `}`, false},
		{"message not string", `{"message": 42, "financial_data": ` + validReport + `}`, true},
		{"missing financial_data", `{"message": "hi"}`, true},
		{"financial_data not object", `{"message": "hi", "financial_data": "none"}`, true},
		{"missing income_statement", `{"message": "hi", "financial_data": {"balance_sheet": {}}}`, true},
		{"entry without name", `{"message": "hi", "financial_data": {"balance_sheet": {"equity": [{"value": 1}]}, "income_statement": {}}}`, true},
		{"not json", `message=hi`, true},
		{"array body", `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ChatRequest([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChatRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, ok := v.(map[string]interface{}); !ok {
					t.Errorf("expected decoded object, got %T", v)
				}
			}
		})
	}
}

func TestExportRequest(t *testing.T) {
	if _, err := ExportRequest([]byte(`{"financial_data": ` + validReport + `}`)); err != nil {
		t.Errorf("valid export request rejected: %v", err)
	}
	if _, err := ExportRequest([]byte(`{"data": {}}`)); err == nil {
		t.Error("expected error for missing financial_data")
	}
}
