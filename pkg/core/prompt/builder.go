package prompt

import (
	"encoding/json"
	"fmt"
)

// Builder renders the extraction and chat prompts. It has no side effects.
type Builder struct {
	registry       *Registry
	companyName    string
	companyContext string
}

// NewBuilder uses the given registry; empty company fields fall back to the defaults.
func NewBuilder(registry *Registry, companyName, companyContext string) *Builder {
	if registry == nil {
		registry = Get()
	}
	if companyName == "" {
		companyName = DefaultCompanyName
	}
	if companyContext == "" {
		companyContext = DefaultCompanyContext
	}
	return &Builder{registry: registry, companyName: companyName, companyContext: companyContext}
}

// Rendered is a prompt ready to send. System is the template's optional
// system instruction and is empty for the built-ins.
type Rendered struct {
	System string
	User   string
}

func render(pt *PromptTemplate, ctx *PromptExecutionContext) (Rendered, error) {
	user, err := RenderUserPrompt(pt, ctx)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{System: pt.SystemPrompt, User: user}, nil
}

// BuildExtractionPrompt embeds raw statement text in the extraction template.
func (b *Builder) BuildExtractionPrompt(text string) (Rendered, error) {
	pt, err := b.registry.GetPrompt(IDExtraction)
	if err != nil {
		return Rendered{}, err
	}
	return render(pt, NewContext().Set("Text", text))
}

// BuildChatPrompt embeds a question and a previously returned report. The
// report is rendered as two-space indented JSON; keyMetrics may be empty.
func (b *Builder) BuildChatPrompt(question string, financialData interface{}, keyMetrics string) (Rendered, error) {
	pt, err := b.registry.GetPrompt(IDChat)
	if err != nil {
		return Rendered{}, err
	}
	data, err := json.MarshalIndent(financialData, "", "  ")
	if err != nil {
		return Rendered{}, fmt.Errorf("failed to encode financial data: %w", err)
	}

	ctx := NewContext().
		Set("Question", question).
		Set("FinancialData", string(data)).
		Set("KeyMetrics", keyMetrics).
		Set("CompanyName", b.companyName).
		Set("CompanyContext", b.companyContext)
	return render(pt, ctx)
}
