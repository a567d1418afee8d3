package llm

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type fakeMessager struct {
	lastParams anthropic.MessageNewParams
	resp       *anthropic.Message
	err        error
}

func (f *fakeMessager) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.lastParams = params
	return f.resp, f.err
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	fake := &fakeMessager{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "{\"balance_sheet\":"},
			{Type: "thinking"},
			{Type: "text", Text: "{}}"},
		},
	}}
	p := &AnthropicProvider{Model: "claude-test", messages: fake}

	got, err := p.GenerateResponse(context.Background(), "prompt", "", map[string]interface{}{OptModel: "claude-override"})
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if got != "{\"balance_sheet\":{}}" {
		t.Errorf("got %q", got)
	}
	if string(fake.lastParams.Model) != "claude-override" {
		t.Errorf("model override not applied: %s", fake.lastParams.Model)
	}
	if len(fake.lastParams.System) != 0 {
		t.Errorf("expected no system prompt")
	}
}

func TestAnthropicProvider_Error(t *testing.T) {
	p := &AnthropicProvider{Model: "claude-test", messages: &fakeMessager{err: errors.New("overloaded")}}
	if _, err := p.GenerateResponse(context.Background(), "prompt", "sys", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestConstructorsRequireCredentials(t *testing.T) {
	ctx := context.Background()
	if _, err := NewGeminiProvider(ctx, "", ""); err == nil {
		t.Error("gemini: expected error without key")
	}
	if _, err := NewGeminiLegacyProvider(ctx, "", ""); err == nil {
		t.Error("gemini-legacy: expected error without key")
	}
	if _, err := NewAnthropicProvider("", ""); err == nil {
		t.Error("anthropic: expected error without key")
	}
	if _, err := NewOpenAIProvider(ctx, "", "", ""); err == nil {
		t.Error("openai: expected error without key")
	}
}

func TestModelFromOptions(t *testing.T) {
	if got := modelFromOptions(nil, "base"); got != "base" {
		t.Errorf("nil options: got %q", got)
	}
	if got := modelFromOptions(map[string]interface{}{OptModel: ""}, "base"); got != "base" {
		t.Errorf("empty override: got %q", got)
	}
	if !wantsJSON(map[string]interface{}{OptJSONOutput: true}) {
		t.Error("wantsJSON should be true")
	}
}
