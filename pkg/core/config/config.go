package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// MaxUploadBytes is the fixed ceiling for PDF upload requests (10 MiB).
const MaxUploadBytes int64 = 10 * 1024 * 1024

type AppConfig struct {
	Port         string
	LogLevel     string
	LogFile      string
	StaticDir    string
	ResourcesDir string
	ModelsConfig string

	GoogleAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string

	// LLMProvider and LLMModel override the active provider of config/models.yaml.
	LLMProvider string
	LLMModel    string

	RateLimitRPS   float64
	RateLimitBurst int

	ExtractionCacheTTL time.Duration

	CompanyName    string
	CompanyContext string
}

// Load reads .env (if present) and the process environment.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file loaded, relying on process environment")
	}

	cfg := &AppConfig{
		Port:         getEnv("PORT", "5000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		ResourcesDir: getEnv("RESOURCES_DIR", "resources"),
		ModelsConfig: getEnv("MODELS_CONFIG", "config/models.yaml"),

		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),

		LLMProvider: getEnv("LLM_PROVIDER", ""),
		LLMModel:    getEnv("LLM_MODEL", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		ExtractionCacheTTL: getEnvDuration("EXTRACTION_CACHE_TTL", 0),

		CompanyName:    getEnv("COMPANY_NAME", ""),
		CompanyContext: getEnv("COMPANY_CONTEXT", ""),
	}
	return cfg
}

// Credentials returns the model secrets for agent.NewManager.
func (c *AppConfig) Credentials() agent.Credentials {
	return agent.Credentials{
		GoogleAPIKey:    c.GoogleAPIKey,
		AnthropicAPIKey: c.AnthropicAPIKey,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIBaseURL:   c.OpenAIBaseURL,
	}
}

// LoadModels reads the provider config file. A missing file yields defaults;
// LLM_PROVIDER / LLM_MODEL are applied on top.
func (c *AppConfig) LoadModels() (agent.Config, error) {
	var agentCfg agent.Config

	data, err := os.ReadFile(c.ModelsConfig)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &agentCfg); err != nil {
			return agent.Config{}, fmt.Errorf("failed to parse %s: %w", c.ModelsConfig, err)
		}
	case os.IsNotExist(err):
		logger.Log.WithField("path", c.ModelsConfig).Info("No models config found, using defaults")
	default:
		return agent.Config{}, fmt.Errorf("failed to read %s: %w", c.ModelsConfig, err)
	}

	if c.LLMProvider != "" {
		agentCfg.ActiveProvider = c.LLMProvider
	}
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "gemini"
	}
	if c.LLMModel != "" {
		if agentCfg.Models == nil {
			agentCfg.Models = map[string]string{}
		}
		agentCfg.Models[agentCfg.ActiveProvider] = c.LLMModel
	}
	return agentCfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Log.Warnf("Invalid %s value %q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Log.Warnf("Invalid %s value %q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		logger.Log.Warnf("Invalid %s value %q, using default %s", key, raw, fallback)
		return fallback
	}
	return v
}
