package handler

import (
	"log/slog"
	"net/http"

	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"
	"campaigner/internal/httputil"
)

// HistoryHandler serves the generation history
type HistoryHandler struct {
	workflow studioSvc.WorkflowService
	logger   *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(workflow studioSvc.WorkflowService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		workflow: workflow,
		logger:   logger,
	}
}

// HistoryResponse is the filtered history view
type HistoryResponse struct {
	Entries []models.HistoryEntry `json:"entries"`
	Search  string                `json:"search"`
	Channel string                `json:"channel"`
}

// ListHistory filters history by search text and channel
// GET /api/history?search=&channel=
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = models.ChannelAll
	}

	httputil.RespondJSON(w, http.StatusOK, HistoryResponse{
		Entries: h.workflow.QueryHistory(search, channel),
		Search:  search,
		Channel: channel,
	})
}

// LoadHistoryEntry publishes a past generation as the current state
// POST /api/history/{id}/load
func (h *HistoryHandler) LoadHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondProblem(w, r, http.StatusBadRequest, "history entry ID is required")
		return
	}

	snap, err := h.workflow.LoadHistoryEntry(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// DeleteHistoryEntry removes a past generation
// DELETE /api/history/{id}
func (h *HistoryHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondProblem(w, r, http.StatusBadRequest, "history entry ID is required")
		return
	}

	if err := h.workflow.DeleteHistoryEntry(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}
