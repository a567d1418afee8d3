package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	// Name returns the provider key used in configuration (e.g. "gemini").
	Name() string
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// Provider keys accepted in config/models.yaml and LLM_PROVIDER.
const (
	NameGemini       = "gemini"
	NameGeminiLegacy = "gemini-legacy"
	NameAnthropic    = "anthropic"
	NameOpenAI       = "openai"
)

// Default model per provider.
var DefaultModels = map[string]string{
	NameGemini:       "gemini-1.5-pro",
	NameGeminiLegacy: "gemini-1.5-pro",
	NameAnthropic:    "claude-sonnet-4-20250514",
	NameOpenAI:       "gpt-4o-mini",
}

// Options keys understood by the providers.
const (
	OptModel      = "model"
	OptJSONOutput = "json_output"
)

func modelFromOptions(options map[string]interface{}, fallback string) string {
	if val, ok := options[OptModel].(string); ok && val != "" {
		return val
	}
	return fallback
}

func wantsJSON(options map[string]interface{}) bool {
	val, ok := options[OptJSONOutput].(bool)
	return ok && val
}
