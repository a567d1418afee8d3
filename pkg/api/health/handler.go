// Package health reports whether the model backend is usable.
package health

import (
	"net/http"

	"statement_insight/pkg/api/respond"
	"statement_insight/pkg/core/agent"
)

// ModelStatus is implemented by agent.Manager.
type ModelStatus interface {
	Ready(agentType string) error
	ProviderName(agentType string) string
	ModelName(agentType string) string
}

type Response struct {
	Status      string `json:"status"`
	AIAvailable bool   `json:"ai_available"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Error       string `json:"error,omitempty"`
}

type Handler struct {
	models ModelStatus
}

func NewHandler(models ModelStatus) *Handler {
	return &Handler{models: models}
}

// HandleHealth always answers 200; ai_available reflects the extraction agent.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Provider: h.models.ProviderName(agent.AgentExtraction),
		Model:    h.models.ModelName(agent.AgentExtraction),
	}
	if err := h.models.Ready(agent.AgentExtraction); err != nil {
		resp.Error = err.Error()
	} else {
		resp.AIAvailable = true
	}
	respond.JSON(w, http.StatusOK, resp)
}
