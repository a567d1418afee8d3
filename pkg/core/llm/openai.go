package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIProvider serves OpenAI and any OpenAI-compatible host (DeepSeek, Qwen,
// local gateways) through eino's chat model. BaseURL selects the host.
type OpenAIProvider struct {
	Model     string
	chatModel einomodel.BaseChatModel
}

var _ Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(ctx context.Context, apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}
	if model == "" {
		model = DefaultModels[NameOpenAI]
	}
	temperature := float32(0.1)
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI chat model: %w", err)
	}
	return &OpenAIProvider{Model: model, chatModel: cm}, nil
}

func (p *OpenAIProvider) Name() string { return NameOpenAI }

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	var messages []*schema.Message
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(prompt))

	var opts []einomodel.Option
	if m := modelFromOptions(options, ""); m != "" {
		opts = append(opts, einomodel.WithModel(m))
	}

	resp, err := p.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return raw
}
