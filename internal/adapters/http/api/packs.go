package api

import (
	"context"
	"net/http"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// PacksDependencies defines the interface for pack operations.
type PacksDependencies interface {
	Packs(ctx context.Context, query string) (service.PacksView, error)
}

// PacksHandler handles pack requests.
type PacksHandler struct {
	deps PacksDependencies
}

// NewPacksHandler creates a new packs handler.
func NewPacksHandler(deps PacksDependencies) *PacksHandler {
	return &PacksHandler{deps: deps}
}

// HandlePacks handles GET /packs?q= requests.
func (h *PacksHandler) HandlePacks(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Packs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
