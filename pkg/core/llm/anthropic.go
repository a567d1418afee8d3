package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicMessager is the subset of the Anthropic client used here.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider implements Provider on the Anthropic Messages API.
type AnthropicProvider struct {
	Model    string
	messages AnthropicMessager
}

var _ Provider = (*AnthropicProvider)(nil)

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not configured")
	}
	if model == "" {
		model = DefaultModels[NameAnthropic]
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{Model: model, messages: &c.Messages}, nil
}

func (p *AnthropicProvider) Name() string { return NameAnthropic }

func (p *AnthropicProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelFromOptions(options, p.Model)),
		MaxTokens:   8192,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.1),
	}
	if strings.TrimSpace(systemPrompt) != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := p.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generation failed: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

func (p *AnthropicProvider) AdaptInstructions(raw string) string {
	return raw
}
