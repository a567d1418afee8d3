package prompt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildExtractionPrompt(t *testing.T) {
	b := NewBuilder(NewRegistry(), "", "")
	text := "Balance Sheet as at 31 March 2024\nCash and cash equivalents 5,000"

	rendered, err := b.BuildExtractionPrompt(text)
	if err != nil {
		t.Fatalf("BuildExtractionPrompt: %v", err)
	}
	got := rendered.User
	if !strings.HasSuffix(strings.TrimSpace(got), "Text to analyze: "+text) {
		t.Errorf("text not embedded at the end of the prompt")
	}
	for _, want := range []string{`"balance_sheet"`, `"non_operating"`, `{"name": "Cash", "value": 5000}`, "Ensure all values are positive numbers"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildExtractionPrompt_TemplateSyntaxInText(t *testing.T) {
	b := NewBuilder(NewRegistry(), "", "")
	text := "weird {{.Text}} content"
	rendered, err := b.BuildExtractionPrompt(text)
	if err != nil {
		t.Fatalf("BuildExtractionPrompt: %v", err)
	}
	got := rendered.User
	if !strings.Contains(got, text) {
		t.Error("template markers inside the text must be embedded verbatim")
	}
}

func TestBuildChatPrompt(t *testing.T) {
	b := NewBuilder(NewRegistry(), "", "")
	data := map[string]interface{}{
		"balance_sheet": map[string]interface{}{"equity": []interface{}{map[string]interface{}{"name": "Common Stock", "value": 8000}}},
	}

	rendered, err := b.BuildChatPrompt("What is the debt-to-equity ratio?", data, "")
	if err != nil {
		t.Fatalf("BuildChatPrompt: %v", err)
	}
	got := rendered.User

	indented, _ := json.MarshalIndent(data, "", "  ")
	for _, want := range []string{
		"Analyze the following financial data for " + DefaultCompanyName + " and answer this question: What is the debt-to-equity ratio?",
		"ISO 9001:2015",
		string(indented),
		"WACC = (E/V) * Re + (D/V) * Rd * (1-Tc)",
		"Total Debt / Total Equity",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
	if strings.Contains(got, "Key Metrics") {
		t.Error("key metrics section should be omitted when empty")
	}
	if rendered.System != "" {
		t.Errorf("built-in chat prompt has no system instruction, got %q", rendered.System)
	}
}

func TestBuildChatPrompt_KeyMetrics(t *testing.T) {
	b := NewBuilder(NewRegistry(), "", "")
	rendered, err := b.BuildChatPrompt("Is the company liquid?", map[string]interface{}{}, "- Current Ratio: 2.00")
	if err != nil {
		t.Fatalf("BuildChatPrompt: %v", err)
	}
	got := rendered.User
	if !strings.Contains(got, "Key Metrics (computed from the data above):\n- Current Ratio: 2.00\n") {
		t.Errorf("key metrics not embedded:\n%s", got)
	}
}

func TestBuildChatPrompt_CustomCompany(t *testing.T) {
	b := NewBuilder(NewRegistry(), "Acme Ltd", "Acme makes anvils.")
	rendered, err := b.BuildChatPrompt("WACC?", map[string]interface{}{}, "")
	if err != nil {
		t.Fatalf("BuildChatPrompt: %v", err)
	}
	got := rendered.User
	if !strings.Contains(got, "for Acme Ltd and") || !strings.Contains(got, "Acme makes anvils.") {
		t.Errorf("company overrides not applied")
	}
	if strings.Contains(got, "Jamshedpur") {
		t.Errorf("default context should be replaced")
	}
}

func TestLoadFromDirectory_Override(t *testing.T) {
	dir := t.TempDir()
	promptDir := filepath.Join(dir, "prompts", "chat")
	if err := os.MkdirAll(promptDir, 0o755); err != nil {
		t.Fatal(err)
	}
	override := `{"name": "Short chat", "user_prompt_template": "Q: {{.Question}}\nDATA: {{.FinancialData}}"}`
	if err := os.WriteFile(filepath.Join(promptDir, "financial_analysis.json"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	n, err := r.LoadFromDirectory(dir)
	if err != nil {
		t.Fatalf("LoadFromDirectory: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded %d prompts, want 1", n)
	}
	pt, err := r.GetPrompt(IDChat)
	if err != nil {
		t.Fatal(err)
	}
	if pt.Category != "chat" {
		t.Errorf("category = %q", pt.Category)
	}

	rendered, err := NewBuilder(r, "", "").BuildChatPrompt("Margin?", []int{1}, "- Net Margin: 5.00%")
	if err != nil {
		t.Fatal(err)
	}
	if got := rendered.User; got != "Q: Margin?\nDATA: [\n  1\n]" {
		t.Errorf("override not used: %q", got)
	}
	if rendered.System != "" {
		t.Errorf("System = %q, want empty when the override sets none", rendered.System)
	}

	r.Reset()
	if pt, _ := r.GetPrompt(IDChat); pt.UserPromptTmpl != chatTemplate {
		t.Error("Reset should restore the built-in template")
	}
}

func TestLoadFromDirectory_SystemPrompt(t *testing.T) {
	dir := t.TempDir()
	promptDir := filepath.Join(dir, "prompts", "extraction")
	if err := os.MkdirAll(promptDir, 0o755); err != nil {
		t.Fatal(err)
	}
	override := `{"system_prompt": "You are a meticulous accountant.", "user_prompt_template": "Extract: {{.Text}}"}`
	if err := os.WriteFile(filepath.Join(promptDir, "financial_report.json"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if _, err := r.LoadFromDirectory(dir); err != nil {
		t.Fatalf("LoadFromDirectory: %v", err)
	}
	rendered, err := NewBuilder(r, "", "").BuildExtractionPrompt("Cash 5000")
	if err != nil {
		t.Fatal(err)
	}
	if rendered.System != "You are a meticulous accountant." {
		t.Errorf("System = %q", rendered.System)
	}
	if rendered.User != "Extract: Cash 5000" {
		t.Errorf("User = %q", rendered.User)
	}
}

func TestLoadFromDirectory_Errors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.LoadFromDirectory(t.TempDir()); err == nil {
		t.Error("expected error for missing prompts directory")
	}

	dir := t.TempDir()
	promptDir := filepath.Join(dir, "prompts", "extraction")
	os.MkdirAll(promptDir, 0o755)
	os.WriteFile(filepath.Join(promptDir, "financial_report.json"), []byte(`{"user_prompt_template": "{{.Text"}`), 0o644)
	if _, err := r.LoadFromDirectory(dir); err == nil {
		t.Error("expected error for broken template")
	}
	if pt, _ := r.GetPrompt(IDExtraction); pt.UserPromptTmpl != extractionTemplate {
		t.Error("broken override must not replace the built-in")
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if ids := r.ListPrompts(); len(ids) != 2 || ids[0] != IDChat || ids[1] != IDExtraction {
		t.Errorf("ListPrompts() = %v", ids)
	}
}
