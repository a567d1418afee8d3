package agent

import (
	"context"
	"errors"
	"testing"

	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/llm"
)

type MockProvider struct {
	GenerateFunc func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error)
	lastOptions  map[string]interface{}
	lastSystem   string
	closed       bool
	CloseErr     error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	m.lastOptions = options
	m.lastSystem = systemPrompt
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, systemPrompt, options)
	}
	return "ok", nil
}

func (m *MockProvider) AdaptInstructions(raw string) string { return raw }

type ClosingProvider struct {
	MockProvider
}

func (c *ClosingProvider) Close() error {
	c.closed = true
	return c.CloseErr
}

// wrapProvider tags the system prompt so the test can see it went through AdaptInstructions.
type wrapProvider struct {
	MockProvider
}

func (w *wrapProvider) AdaptInstructions(raw string) string {
	if raw == "" {
		return ""
	}
	return "[sys] " + raw
}

func TestManager_Generate(t *testing.T) {
	mock := &MockProvider{}
	mgr := NewManagerWithProviders(Config{ActiveProvider: "gemini"}, map[string]llm.Provider{"gemini": mock})

	resp, err := mgr.Generate(context.Background(), AgentExtraction, "hello", "", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp != "ok" {
		t.Errorf("resp = %q", resp)
	}
}

func TestManager_Unavailable(t *testing.T) {
	mgr := NewManagerWithProviders(Config{ActiveProvider: "gemini"}, nil)

	_, err := mgr.Generate(context.Background(), AgentChat, "hello", "", nil)
	var unavail *apperr.ModelUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ModelUnavailableError, got %T: %v", err, err)
	}
	if unavail.Provider != "gemini" {
		t.Errorf("provider = %q", unavail.Provider)
	}
	if mgr.Ready(AgentChat) == nil {
		t.Error("Ready should report unavailable")
	}
}

func TestManager_MissingCredentialAtStartup(t *testing.T) {
	mgr := NewManager(context.Background(), Config{}, Credentials{})

	err := mgr.Ready(AgentExtraction)
	var unavail *apperr.ModelUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ModelUnavailableError, got %v", err)
	}
	if unavail.Err == nil {
		t.Error("expected init error to be carried")
	}
}

func TestManager_CallErrors(t *testing.T) {
	tests := []struct {
		name string
		resp string
		err  error
		want error
	}{
		{"remote failure", "", errors.New("quota exceeded"), nil},
		{"empty body", "   \n", nil, apperr.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockProvider{GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
				return tt.resp, tt.err
			}}
			mgr := NewManagerWithProviders(Config{ActiveProvider: "gemini"}, map[string]llm.Provider{"gemini": mock})

			_, err := mgr.Generate(context.Background(), AgentExtraction, "p", "", nil)
			var callErr *apperr.ModelCallError
			if !errors.As(err, &callErr) {
				t.Fatalf("expected ModelCallError, got %T", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain", tt.want)
			}
		})
	}
}

func TestManager_AgentOverrides(t *testing.T) {
	gemini := &MockProvider{}
	claude := &MockProvider{}
	cfg := Config{
		ActiveProvider: "gemini",
		Models:         map[string]string{"gemini": "gemini-1.5-flash"},
		Agents: map[string]AgentConfig{
			AgentChat: {Provider: "anthropic", Model: "claude-x"},
		},
	}
	mgr := NewManagerWithProviders(cfg, map[string]llm.Provider{"gemini": gemini, "anthropic": claude})

	if got := mgr.ProviderName(AgentChat); got != "anthropic" {
		t.Errorf("chat provider = %q", got)
	}
	if got := mgr.ModelName(AgentExtraction); got != "gemini-1.5-flash" {
		t.Errorf("extraction model = %q", got)
	}

	if _, err := mgr.Generate(context.Background(), AgentChat, "q", "", nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if claude.lastOptions["model"] != "claude-x" {
		t.Errorf("expected model override, got %v", claude.lastOptions)
	}
	if gemini.lastOptions != nil {
		t.Error("gemini should not have been called")
	}
}

func TestManager_SystemPrompt(t *testing.T) {
	tests := []struct {
		name   string
		system string
		want   string
	}{
		{"passed through adapter", "You are a meticulous accountant.", "[sys] You are a meticulous accountant."},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &wrapProvider{}
			mgr := NewManagerWithProviders(Config{ActiveProvider: "gemini"}, map[string]llm.Provider{"gemini": mock})

			if _, err := mgr.Generate(context.Background(), AgentExtraction, "p", tt.system, nil); err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if mock.lastSystem != tt.want {
				t.Errorf("provider got system %q, want %q", mock.lastSystem, tt.want)
			}
		})
	}
}

func TestManager_Close(t *testing.T) {
	closer := &ClosingProvider{}
	failing := &ClosingProvider{MockProvider: MockProvider{CloseErr: errors.New("conn reset")}}
	plain := &MockProvider{}
	mgr := NewManagerWithProviders(Config{ActiveProvider: "gemini"}, map[string]llm.Provider{
		"gemini":        closer,
		"gemini-legacy": failing,
		"anthropic":     plain,
	})

	err := mgr.Close()
	if !closer.closed || !failing.closed {
		t.Error("every closable provider should be closed")
	}
	if err == nil || !errors.Is(err, failing.CloseErr) {
		t.Errorf("expected close error in chain, got %v", err)
	}

	if err := NewManagerWithProviders(Config{}, nil).Close(); err != nil {
		t.Errorf("Close with no providers: %v", err)
	}
}
