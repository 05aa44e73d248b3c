package handler

import (
	"log/slog"
	"net/http"

	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"
	"campaigner/internal/httputil"
)

// AgentRoster reports agent activity for an active agent id
type AgentRoster interface {
	Status(activeID string) []models.AgentStatus
}

// AgentsHandler serves the agent status panel
type AgentsHandler struct {
	roster   AgentRoster
	workflow studioSvc.WorkflowService
	logger   *slog.Logger
}

// NewAgentsHandler creates a new agents handler
func NewAgentsHandler(roster AgentRoster, workflow studioSvc.WorkflowService, logger *slog.Logger) *AgentsHandler {
	return &AgentsHandler{
		roster:   roster,
		workflow: workflow,
		logger:   logger,
	}
}

// AgentsResponse is the status panel payload
type AgentsResponse struct {
	ActiveAgentID string               `json:"active_agent_id"`
	Agents        []models.AgentStatus `json:"agents"`
}

// ListAgents returns the roster with active flags
// GET /api/agents
func (h *AgentsHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	active := h.workflow.Snapshot().ActiveAgentID

	httputil.RespondJSON(w, http.StatusOK, AgentsResponse{
		ActiveAgentID: active,
		Agents:        h.roster.Status(active),
	})
}
