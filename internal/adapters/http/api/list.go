package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// ListDependencies defines the interface for list operations.
type ListDependencies interface {
	List(ctx context.Context, query string) (service.ListView, error)
	Level(ctx context.Context, rank int) (service.LevelView, error)
}

// ListHandler handles list requests.
type ListHandler struct {
	deps ListDependencies
}

// NewListHandler creates a new list handler.
func NewListHandler(deps ListDependencies) *ListHandler {
	return &ListHandler{deps: deps}
}

// HandleList handles GET /list?q= requests.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleLevel handles GET /list/{rank} requests.
func (h *ListHandler) HandleLevel(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(r.PathValue("rank"))
	if err != nil || rank < 1 {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: rank must be a positive integer", ErrBadRequest))
		return
	}
	view, err := h.deps.Level(r.Context(), rank)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
