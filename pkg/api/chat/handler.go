// Package chat answers follow-up questions about an extracted report.
package chat

import (
	"context"
	"errors"
	"io"
	"net/http"

	"statement_insight/pkg/api/respond"
	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/core/utils"
	"statement_insight/pkg/core/validate"
)

const maxBodyBytes = 2 << 20

// Answerer is implemented by pipeline.Service.
type Answerer interface {
	Chat(ctx context.Context, question string, financialData interface{}) (string, error)
}

type Handler struct {
	answerer Answerer
}

func NewHandler(a Answerer) *Handler {
	return &Handler{answerer: a}
}

// Response carries the model's markdown answer and its HTML rendering.
type Response struct {
	Response     string `json:"response"`
	ResponseHTML string `json:"response_html,omitempty"`
}

// HandleChat expects {"message": string, "financial_data": FinancialReport}.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	doc, err := validate.ChatRequest(body)
	if err != nil {
		logger.Log.WithError(err).Warn("chat request rejected")
		respond.Error(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	req := doc.(map[string]interface{})

	answer, err := h.answerer.Chat(r.Context(), req["message"].(string), req["financial_data"])
	if err != nil {
		var unavailErr *apperr.ModelUnavailableError
		if errors.As(err, &unavailErr) {
			respond.Error(w, http.StatusServiceUnavailable, "AI service is not available. Please check your API key configuration.")
			return
		}
		logger.Log.WithError(err).Error("Error generating AI response")
		respond.Error(w, http.StatusInternalServerError, "Failed to generate response")
		return
	}

	resp := Response{Response: answer}
	if html, err := utils.RenderMarkdown(utils.CleanMarkdown(answer)); err == nil {
		resp.ResponseHTML = html
	} else {
		logger.Log.WithError(err).Warn("markdown render failed")
	}
	respond.JSON(w, http.StatusOK, resp)
}
