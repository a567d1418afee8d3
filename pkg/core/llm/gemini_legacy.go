package llm

import (
	"context"
	"fmt"
	"strings"

	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLegacyProvider talks to Gemini through the older generative-ai-go SDK.
// It is kept for deployments pinned to that client's behaviour.
type GeminiLegacyProvider struct {
	Model  string
	client *legacy.Client
}

var _ Provider = (*GeminiLegacyProvider)(nil)

func NewGeminiLegacyProvider(ctx context.Context, apiKey, model string) (*GeminiLegacyProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable not found")
	}
	if model == "" {
		model = DefaultModels[NameGeminiLegacy]
	}

	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiLegacyProvider{Model: model, client: client}, nil
}

func (p *GeminiLegacyProvider) Name() string { return NameGeminiLegacy }

func (p *GeminiLegacyProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	model := p.client.GenerativeModel(modelFromOptions(options, p.Model))
	model.SetTemperature(0.1)
	if wantsJSON(options) {
		model.ResponseMIMEType = "application/json"
	}
	if strings.TrimSpace(systemPrompt) != "" {
		model.SystemInstruction = legacy.NewUserContent(legacy.Text(systemPrompt))
	}

	resp, err := model.GenerateContent(ctx, legacy.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(legacy.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		break
	}
	return sb.String(), nil
}

func (p *GeminiLegacyProvider) AdaptInstructions(raw string) string {
	return raw
}

// Close releases the underlying gRPC connection.
func (p *GeminiLegacyProvider) Close() error {
	return p.client.Close()
}
