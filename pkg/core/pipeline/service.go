// Package pipeline runs the upload and chat flows:
// PDF bytes -> text -> prompt -> model -> normalized report, and
// question + report -> prompt -> model -> answer.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/llm"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/core/normalize"
	"statement_insight/pkg/core/prompt"
	"statement_insight/pkg/models"
)

const (
	msgNoText = "No readable text found in the PDF. Please ensure the PDF contains text and not just images."
	msgNoData = "No financial data could be extracted from the PDF. Please ensure the document contains financial statements."
)

// TextExtractor turns PDF bytes into plain text.
type TextExtractor interface {
	Extract(content []byte) (string, error)
}

// ModelClient is the subset of agent.Manager used by the pipeline.
type ModelClient interface {
	Ready(agentType string) error
	Generate(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (string, error)
}

// PromptBuilder renders the extraction and chat prompts.
type PromptBuilder interface {
	BuildExtractionPrompt(text string) (prompt.Rendered, error)
	BuildChatPrompt(question string, financialData interface{}, keyMetrics string) (prompt.Rendered, error)
}

// Service is shared by all requests. The optional cache is the only mutable
// state and is safe for concurrent use.
type Service struct {
	extractor TextExtractor
	model     ModelClient
	prompts   PromptBuilder
	cache     *cache.Cache
}

// NewService wires the pipeline. A cacheTTL <= 0 disables the extraction cache.
func NewService(extractor TextExtractor, model ModelClient, prompts PromptBuilder, cacheTTL time.Duration) *Service {
	s := &Service{extractor: extractor, model: model, prompts: prompts}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

// ProcessPDF extracts a FinancialReport from an uploaded PDF.
func (s *Service) ProcessPDF(ctx context.Context, data []byte) (*models.FinancialReport, error) {
	if err := s.model.Ready(agent.AgentExtraction); err != nil {
		return nil, err
	}

	key := ""
	if s.cache != nil {
		sum := sha256.Sum256(data)
		key = hex.EncodeToString(sum[:])
		if cached, ok := s.cache.Get(key); ok {
			logger.Log.WithField("sha256", key[:12]).Info("extraction cache hit")
			report := cached.(models.FinancialReport)
			return &report, nil
		}
	}

	start := time.Now()
	text, err := s.extractor.Extract(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &apperr.InputValidationError{Msg: msgNoText}
	}
	logger.Log.WithField("chars", len(text)).Debug("extracted PDF text")

	rendered, err := s.prompts.BuildExtractionPrompt(text)
	if err != nil {
		return nil, err
	}

	resp, err := s.model.Generate(ctx, agent.AgentExtraction, rendered.User, rendered.System, map[string]interface{}{
		llm.OptJSONOutput: true,
	})
	if err != nil {
		return nil, err
	}

	report, err := normalize.Normalize(resp)
	if err != nil {
		logger.Log.WithError(err).WithField("response_chars", len(resp)).Warn("model response rejected")
		return nil, err
	}
	if report.IsEmpty() {
		return nil, &apperr.InputValidationError{Msg: msgNoData}
	}

	if s.cache != nil {
		s.cache.SetDefault(key, *report)
	}
	logger.Log.WithFields(logrus.Fields{
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Info("financial report extracted")
	return report, nil
}

// Chat answers a question about a previously extracted report. The answer is
// markdown text from the model, trimmed of surrounding whitespace.
func (s *Service) Chat(ctx context.Context, question string, financialData interface{}) (string, error) {
	if err := s.model.Ready(agent.AgentChat); err != nil {
		return "", err
	}
	// Metrics are best effort: a report the normalizer rejects is still sent as-is.
	metrics := ""
	if report, err := normalize.FromValue(financialData); err == nil {
		metrics = calc.Summarize(report).Text()
	}
	rendered, err := s.prompts.BuildChatPrompt(question, financialData, metrics)
	if err != nil {
		return "", err
	}
	resp, err := s.model.Generate(ctx, agent.AgentChat, rendered.User, rendered.System, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}
