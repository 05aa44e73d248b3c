package handler

import (
	"net/http"
)

// Handlers groups the route handlers mounted by RegisterRoutes
type Handlers struct {
	Studio  *StudioHandler
	History *HistoryHandler
	Agents  *AgentsHandler
}

// RegisterRoutes mounts every endpoint on mux
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	// Health check (no auth)
	mux.HandleFunc("GET /health", HealthCheck)

	// Workflow
	mux.HandleFunc("GET /api/state", h.Studio.GetState)
	mux.HandleFunc("POST /api/briefs", h.Studio.SubmitBrief)
	mux.HandleFunc("POST /api/graphics", h.Studio.RequestGraphics)
	mux.HandleFunc("PATCH /api/package/body", h.Studio.UpdateBody)
	mux.HandleFunc("GET /api/package/preview", h.Studio.PreviewBody)
	mux.HandleFunc("DELETE /api/banner", h.Studio.DismissBanner)

	// History
	mux.HandleFunc("GET /api/history", h.History.ListHistory)
	mux.HandleFunc("POST /api/history/{id}/load", h.History.LoadHistoryEntry)
	mux.HandleFunc("DELETE /api/history/{id}", h.History.DeleteHistoryEntry)

	// Agents
	mux.HandleFunc("GET /api/agents", h.Agents.ListAgents)
}
