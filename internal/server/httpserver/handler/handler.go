package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
)

// Handler serves the tokmint HTTP endpoints.
type Handler struct {
	registry *service.Registry
	logger   logger.Logger
}

// New creates a Handler reading scopes from registry.
func New(registry *service.Registry, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		registry: registry,
		logger:   log,
	}
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	response := NewResponse(logger.RequestIDFromContext(r.Context()), data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes an error response with standard envelope format.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	response := NewErrorResponse(logger.RequestIDFromContext(r.Context()), code, message, nil)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}
