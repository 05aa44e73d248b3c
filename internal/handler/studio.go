package handler

import (
	"context"
	"log/slog"
	"net/http"

	"campaigner/internal/domain"
	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"
	"campaigner/internal/httputil"
	"campaigner/internal/utils"
)

// MarkdownRenderer converts a package body to safe HTML
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// StudioHandler exposes the workflow state and its two generation phases
type StudioHandler struct {
	workflow studioSvc.WorkflowService
	renderer MarkdownRenderer
	logger   *slog.Logger
}

// NewStudioHandler creates a new studio handler
func NewStudioHandler(workflow studioSvc.WorkflowService, renderer MarkdownRenderer, logger *slog.Logger) *StudioHandler {
	return &StudioHandler{
		workflow: workflow,
		renderer: renderer,
		logger:   logger,
	}
}

// PreviewResponse is the rendered body of the current package
type PreviewResponse struct {
	HTML           string `json:"html"`
	WordCount      int    `json:"word_count"`
	ReadingMinutes int    `json:"reading_minutes"`
}

// UpdateBodyRequest is the body edit payload
type UpdateBodyRequest struct {
	Body httputil.Optional[string] `json:"body"`
}

// GetState returns the current snapshot
// GET /api/state
func (h *StudioHandler) GetState(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workflow.Snapshot())
}

// SubmitBrief runs content generation for the posted brief
// POST /api/briefs
//
// Generation is detached from the client connection: a dropped request still
// lands in history. The transport enforces its own deadline.
func (h *StudioHandler) SubmitBrief(w http.ResponseWriter, r *http.Request) {
	var brief models.Brief
	if err := httputil.ParseJSON(w, r, &brief); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	snap, err := h.workflow.SubmitBrief(context.WithoutCancel(r.Context()), brief)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// RequestGraphics runs visual asset generation for the current package
// POST /api/graphics
func (h *StudioHandler) RequestGraphics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.workflow.RequestGraphics(context.WithoutCancel(r.Context()))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// UpdateBody replaces the current package's body
// PATCH /api/package/body
func (h *StudioHandler) UpdateBody(w http.ResponseWriter, r *http.Request) {
	var req UpdateBodyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if !req.Body.Set() {
		httputil.RespondProblem(w, r, http.StatusBadRequest, "body is required")
		return
	}

	snap, err := h.workflow.UpdateBody(*req.Body.Value)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// PreviewBody renders the current package body as sanitized HTML
// GET /api/package/preview
func (h *StudioHandler) PreviewBody(w http.ResponseWriter, r *http.Request) {
	pkg := h.workflow.Snapshot().CurrentPackage
	if pkg == nil {
		handleError(w, r, h.logger, &domain.NotFoundError{Message: "no content package to preview"})
		return
	}

	rendered, err := h.renderer.Render(pkg.Content.Body)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PreviewResponse{
		HTML:           rendered,
		WordCount:      utils.CountWords(pkg.Content.Body),
		ReadingMinutes: utils.ReadingMinutes(pkg.Content.Body),
	})
}

// DismissBanner clears the status and error messages
// DELETE /api/banner
func (h *StudioHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.workflow.DismissBanner())
}
