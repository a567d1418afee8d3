package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/llm"
	"statement_insight/pkg/core/logger"

	"github.com/sirupsen/logrus"
)

// Agent types with their own provider/model override in config/models.yaml.
const (
	AgentExtraction = "extraction"
	AgentChat       = "chat"
)

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Models         map[string]string      `yaml:"models"` // provider -> default model
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Optional override
	Description string `yaml:"description"`
}

// Credentials carries the secrets read from the environment at startup.
type Credentials struct {
	GoogleAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
}

// Manager owns the model clients. It is built once at startup and only read
// afterwards, so it is shared by all requests without locking.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
	initErrs  map[string]error
}

// NewManager initializes every provider referenced by the config. A provider
// whose credential is missing or whose client fails to build is recorded as
// unavailable; the process still starts.
func NewManager(ctx context.Context, config Config, creds Credentials) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = llm.NameGemini
	}
	m := &Manager{
		config:    config,
		providers: make(map[string]llm.Provider),
		initErrs:  make(map[string]error),
	}

	for _, name := range m.referencedProviders() {
		model := config.Models[name]
		var (
			p   llm.Provider
			err error
		)
		switch name {
		case llm.NameGemini:
			p, err = llm.NewGeminiProvider(ctx, creds.GoogleAPIKey, model)
		case llm.NameGeminiLegacy:
			p, err = llm.NewGeminiLegacyProvider(ctx, creds.GoogleAPIKey, model)
		case llm.NameAnthropic:
			p, err = llm.NewAnthropicProvider(creds.AnthropicAPIKey, model)
		case llm.NameOpenAI:
			p, err = llm.NewOpenAIProvider(ctx, creds.OpenAIAPIKey, creds.OpenAIBaseURL, model)
		default:
			err = fmt.Errorf("provider %s not found", name)
		}
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"provider": name, "error": err}).Error("Error initializing model provider")
			m.initErrs[name] = err
			continue
		}
		logger.Log.WithField("provider", name).Info("Successfully initialized model provider")
		m.providers[name] = p
	}
	return m
}

// NewManagerWithProviders builds a manager around already constructed providers.
func NewManagerWithProviders(config Config, providers map[string]llm.Provider) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = llm.NameGemini
	}
	if providers == nil {
		providers = map[string]llm.Provider{}
	}
	return &Manager{config: config, providers: providers, initErrs: map[string]error{}}
}

func (m *Manager) referencedProviders() []string {
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	add(m.config.ActiveProvider)
	for _, a := range m.config.Agents {
		add(a.Provider)
	}
	return names
}

// ProviderName resolves which provider serves the given agent type.
func (m *Manager) ProviderName(agentType string) string {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		return agentConfig.Provider
	}
	return m.config.ActiveProvider
}

// ModelName resolves the model used for the given agent type.
func (m *Manager) ModelName(agentType string) string {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		return agentConfig.Model
	}
	name := m.ProviderName(agentType)
	if model := m.config.Models[name]; model != "" {
		return model
	}
	return llm.DefaultModels[name]
}

// Ready returns a ModelUnavailableError when the agent's provider is not usable.
func (m *Manager) Ready(agentType string) error {
	name := m.ProviderName(agentType)
	if _, ok := m.providers[name]; ok {
		return nil
	}
	return &apperr.ModelUnavailableError{Provider: name, Err: m.initErrs[name]}
}

// Generate sends one prompt to the agent's provider. systemPrompt may be
// empty. It never retries.
func (m *Manager) Generate(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	name := m.ProviderName(agentType)
	provider, ok := m.providers[name]
	if !ok {
		return "", &apperr.ModelUnavailableError{Provider: name, Err: m.initErrs[name]}
	}

	opts := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		opts[k] = v
	}
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		if _, set := opts[llm.OptModel]; !set {
			opts[llm.OptModel] = agentConfig.Model
		}
	}

	logger.Log.WithFields(logrus.Fields{"agent": agentType, "provider": name, "prompt_chars": len(prompt), "system_chars": len(systemPrompt)}).Info("Sending request to model")
	resp, err := provider.GenerateResponse(ctx, prompt, provider.AdaptInstructions(systemPrompt), opts)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"agent": agentType, "provider": name, "error": err}).Error("Error calling model API")
		return "", &apperr.ModelCallError{Provider: name, Err: err}
	}
	if strings.TrimSpace(resp) == "" {
		logger.Log.WithField("provider", name).Error("Empty response from model")
		return "", &apperr.ModelCallError{Provider: name, Err: apperr.ErrEmptyResponse}
	}
	logger.Log.WithFields(logrus.Fields{"agent": agentType, "provider": name, "response_chars": len(resp)}).Info("Received response from model")
	return resp, nil
}

// Close releases provider clients that hold connections.
func (m *Manager) Close() error {
	var errs []error
	for name, p := range m.providers {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
