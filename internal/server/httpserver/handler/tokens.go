package handler

import (
	"net/http"

	"github.com/yndnr/tokmint/internal/core/service"
)

// Tokens echoes the tokens generated for the request as JSON.
// It relies on the Tokens middleware having run first.
func (h *Handler) Tokens(w http.ResponseWriter, r *http.Request) {
	resp := TokensResponse{
		Path:   r.URL.Path,
		Tokens: []TokenItem{},
	}
	if h.registry != nil {
		if scope := h.registry.Lookup(r.URL.Path); scope != nil {
			resp.Scope = scope.Location
		}
	}
	for _, res := range service.ResultsFromContext(r.Context()) {
		resp.Tokens = append(resp.Tokens, TokenItem{
			Name:   res.Name,
			Value:  res.Value,
			Header: res.Header,
			Cached: res.Cached,
		})
	}

	w.Header().Set("Cache-Control", "no-store")
	h.writeJSON(w, r, http.StatusOK, resp)
}
