package handler

import (
	"net/http"
	"time"
)

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /readyz. The server is ready once a scope registry
// is installed, even an empty one.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "TM-SYS-5030", "no scope registry loaded")
		return
	}
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ready",
		Time:   time.Now().UTC().Format(time.RFC3339),
		Scopes: h.registry.Len(),
	})
}
