package api

import (
	"context"
	"net/http"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// EditorsDependencies defines the interface for the staff list.
type EditorsDependencies interface {
	Editors(ctx context.Context) service.EditorsView
}

// EditorsHandler handles editor requests.
type EditorsHandler struct {
	deps EditorsDependencies
}

// NewEditorsHandler creates a new editors handler.
func NewEditorsHandler(deps EditorsDependencies) *EditorsHandler {
	return &EditorsHandler{deps: deps}
}

// HandleEditors handles GET /editors requests. An unavailable staff list is
// still a 200 with available=false.
func (h *EditorsHandler) HandleEditors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Editors(r.Context()))
}
